package importer_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/innkeeper/internal/audit"
	"github.com/MrJamesThe3rd/innkeeper/internal/calendar"
	"github.com/MrJamesThe3rd/innkeeper/internal/encoding"
	"github.com/MrJamesThe3rd/innkeeper/internal/importer"
	"github.com/MrJamesThe3rd/innkeeper/internal/memstore"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
	"github.com/MrJamesThe3rd/innkeeper/internal/room"
)

func newRooms(t *testing.T) *room.Service {
	t.Helper()

	svc := room.NewService(memstore.New().Rooms(), calendar.New(calendar.System(), nil), audit.Discard)

	for _, name := range []string{"Double", "Duplo"} {
		_, err := svc.CreateType(context.Background(), room.CreateTypeParams{Name: name, NightlyRate: decimal.NewFromInt(150)})
		require.NoError(t, err)
	}

	return svc
}

func TestService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesAllRooms", func(t *testing.T) {
		rooms := newRooms(t)
		svc := importer.NewService(rooms)

		res, err := svc.Import(ctx, importer.FormatRoomCSV, strings.NewReader("number;floor;room_type\n101;1;double\n102;1;Double\n"))
		require.NoError(t, err)
		assert.Equal(t, encoding.CharsetUTF8, res.Charset)
		require.Len(t, res.Rooms, 2)

		listed, err := rooms.List(ctx, room.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, listed, 2)
	})

	t.Run("Windows1252Header", func(t *testing.T) {
		rooms := newRooms(t)
		svc := importer.NewService(rooms)

		// "Número;Piso;Tipo de quarto" with ú encoded as 0xFA.
		upload := append([]byte{'N', 0xFA}, []byte("mero;Piso;Tipo de quarto\n101;1;Duplo\n")...)

		res, err := svc.Import(ctx, importer.FormatRoomCSV, bytes.NewReader(upload))
		require.NoError(t, err)
		require.Len(t, res.Rooms, 1)
		assert.Equal(t, "101", res.Rooms[0].Number)
	})

	t.Run("UnknownTypeCreatesNothing", func(t *testing.T) {
		rooms := newRooms(t)
		svc := importer.NewService(rooms)

		_, err := svc.Import(ctx, importer.FormatRoomCSV, strings.NewReader("number;floor;room_type\n101;1;Double\n102;1;Penthouse\n"))
		require.ErrorIs(t, err, apperr.NotFound)

		listed, err := rooms.List(ctx, room.ListFilter{})
		require.NoError(t, err)
		assert.Empty(t, listed)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		svc := importer.NewService(newRooms(t))

		_, err := svc.Import(ctx, importer.Format("xlsx"), strings.NewReader(""))
		assert.ErrorIs(t, err, apperr.InvalidArgument)
	})
}
