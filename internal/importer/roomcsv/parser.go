package roomcsv

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/innkeeper/internal/pkg/apperr"
	"github.com/MrJamesThe3rd/innkeeper/internal/room"
)

// Parser reads semicolon-separated room inventory exports. Lines above the header
// (titles, export metadata) are ignored.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse expects UTF-8 input and returns one CreateParams per data row. A malformed row fails
// the whole file so that an import never creates half an inventory.
func (p *Parser) Parse(r io.Reader) ([]room.CreateParams, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidArgument, err, "read csv")
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, apperr.New(apperr.InvalidArgument, "no room inventory header found: expected number;floor;room_type")
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[strings.ToLower(name)] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[strings.ToLower(name)]; !ok {
			return false
		}
	}

	return true
}

// parseRows turns data rows into room params. headerRowNum is the 0-based index of the
// header in the uploaded file, used for error messages. Blank lines are skipped.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]room.CreateParams, error) {
	numberIdx := cols[strings.ToLower(p.NumberCol)]
	floorIdx := cols[strings.ToLower(p.FloorCol)]
	typeIdx := cols[strings.ToLower(p.TypeCol)]

	var params []room.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		if isBlank(row) {
			continue
		}

		number := cellValue(row, numberIdx)
		if number == "" {
			return nil, apperr.New(apperr.InvalidArgument, "row %d: missing room number", rowNum)
		}

		floor := 0
		if s := cellValue(row, floorIdx); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return nil, apperr.New(apperr.InvalidArgument, "row %d: floor %q is not a number", rowNum, s)
			}

			floor = n
		}

		typeName := cellValue(row, typeIdx)
		if typeName == "" {
			return nil, apperr.New(apperr.InvalidArgument, "row %d: missing room type", rowNum)
		}

		params = append(params, room.CreateParams{
			Number:   number,
			Floor:    floor,
			TypeName: typeName,
		})
	}

	if len(params) == 0 {
		return nil, apperr.New(apperr.InvalidArgument, "%s layout detected but no rooms listed", p.Name)
	}

	return params, nil
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

