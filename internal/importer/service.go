package importer

import (
	"context"
	"io"

	"github.com/MrJamesThe3rd/innkeeper/internal/encoding"
	"github.com/MrJamesThe3rd/innkeeper/internal/importer/roomcsv"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
	"github.com/MrJamesThe3rd/innkeeper/internal/room"
)

// RoomCreator is the part of the room service an import needs.
type RoomCreator interface {
	CreateBatch(ctx context.Context, params []room.CreateParams) ([]*room.Room, error)
}

type Service struct {
	rooms   RoomCreator
	parsers map[Format]Parser
}

func NewService(rooms RoomCreator) *Service {
	return &Service{
		rooms: rooms,
		parsers: map[Format]Parser{
			FormatRoomCSV: roomcsv.NewParser(),
		},
	}
}

// Result reports what an import created.
type Result struct {
	Charset encoding.Charset
	Rooms   []*room.Room
}

// Import creates every room listed in the upload, or none of them.
func (s *Service) Import(ctx context.Context, format Format, r io.Reader) (*Result, error) {
	parser, ok := s.parsers[format]
	if !ok {
		return nil, apperr.New(apperr.InvalidArgument, "unknown import format %q", format)
	}

	utf8r, charset, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidArgument, err, "detect encoding")
	}

	params, err := parser.Parse(utf8r)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.CreateBatch(ctx, params)
	if err != nil {
		return nil, err
	}

	return &Result{Charset: charset, Rooms: rooms}, nil
}
