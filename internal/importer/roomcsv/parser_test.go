package roomcsv_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/innkeeper/internal/importer/roomcsv"
	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
	"github.com/MrJamesThe3rd/innkeeper/internal/room"
)

func TestParser_Parse(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    []room.CreateParams
		wantErr string
	}

	tests := []testCase{
		{
			name: "English",
			input: `number;floor;room_type
101;1;Double
102;1;Single
201;2;Suite
`,
			want: []room.CreateParams{
				{Number: "101", Floor: 1, TypeName: "Double"},
				{Number: "102", Floor: 1, TypeName: "Single"},
				{Number: "201", Floor: 2, TypeName: "Suite"},
			},
		},
		{
			name: "PortugueseWithPreamble",
			input: `Inventário de quartos;Hotel Praia
Exportado em;01-01-2025

Número;Piso;Tipo de quarto;Notas
 101 ; 1 ; Duplo ;vista mar
R0;;Individual;
`,
			want: []room.CreateParams{
				{Number: "101", Floor: 1, TypeName: "Duplo"},
				{Number: "R0", Floor: 0, TypeName: "Individual"},
			},
		},
		{
			name: "ColumnsInAnyOrderAndCase",
			input: `Room_Type;NUMBER;Floor
Double;301;3
;;
`,
			want: []room.CreateParams{
				{Number: "301", Floor: 3, TypeName: "Double"},
			},
		},
		{
			name:    "NoHeader",
			input:   "101;1;Double\n",
			wantErr: "no room inventory header found",
		},
		{
			name:    "BadFloor",
			input:   "number;floor;room_type\n101;first;Double\n",
			wantErr: `row 2: floor "first" is not a number`,
		},
		{
			name:    "MissingType",
			input:   "number;floor;room_type\n101;1;Double\n102;1;\n",
			wantErr: "row 3: missing room type",
		},
		{
			name:    "HeaderOnly",
			input:   "number;floor;room_type\n",
			wantErr: "no rooms listed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := roomcsv.NewParser().Parse(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperr.InvalidArgument)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
