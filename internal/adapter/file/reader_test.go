package file

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/neo-data-etl/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNEOCSV = `id,spkid,full_name,pdes,name,prefix,neo,pha,diameter,albedo
a0000433,2000433,"   433 Eros (A898 PA)",433,Eros,,Y,N,16.84,0.25
a0000719,2000719,"   719 Albert (A911 TB)",719,Albert,,Y,N,,
bK20A00B,3840000,"       (2020 AB)",2020 AB,,,Y,Y,0.05,
`

const testCADJSON = `{
  "signature": {"source": "NASA/JPL SBDB Close Approach Data API", "version": "1.1"},
  "count": "2",
  "fields": ["des", "orbit_id", "jd", "cd", "dist", "dist_min", "dist_max", "v_rel", "v_inf", "t_sigma_f", "h"],
  "data": [
    ["433", "659", "2415020.507669610", "1900-Jan-01 00:11", "1.234", "0.0921", "0.0922", "5.678", "4.8", "< 00:01", "10.4"],
    ["2020 AB", "12", "2458849.5", "2020-Jan-01 12:00", 0.05, null, null, 12.5, null, null, null]
  ]
}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadNEOs(t *testing.T) {
	recs, err := ReadNEOs(writeTemp(t, "neos.csv", testNEOCSV))
	require.NoError(t, err)

	want := []domain.RawNEO{
		{PDes: "433", Name: "Eros", Diameter: "16.84", PHA: "N"},
		{PDes: "719", Name: "Albert", Diameter: "", PHA: "N"},
		{PDes: "2020 AB", Name: "", Diameter: "0.05", PHA: "Y"},
	}
	if diff := cmp.Diff(want, recs); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestReadNEOs_KeepsDuplicates(t *testing.T) {
	csv := "pdes,name,diameter,pha\n433,Eros,16.84,N\n433,Eros,16.84,N\n"

	recs, err := ReadNEOs(writeTemp(t, "neos.csv", csv))
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestReadNEOs_ByteOrderMark(t *testing.T) {
	csv := "\ufeffpdes,name,diameter,pha\n433,Eros,16.84,N\n"

	recs, err := ReadNEOs(writeTemp(t, "neos.csv", csv))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "433", recs[0].PDes)
}

func TestReadNEOs_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty file", "", "missing header row"},
		{"missing column", "pdes,name,pha\n433,Eros,N\n", "diameter"},
		{"short row", "pdes,name,diameter,pha\n433,Eros\n", "wrong number of fields"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadNEOs(writeTemp(t, "neos.csv", tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestReadNEOs_MissingFile(t *testing.T) {
	_, err := ReadNEOs(filepath.Join(t.TempDir(), "absent.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadApproaches(t *testing.T) {
	recs, err := ReadApproaches(writeTemp(t, "cad.json", testCADJSON))
	require.NoError(t, err)

	want := []domain.RawApproach{
		{Des: "433", CD: "1900-Jan-01 00:11", Dist: "1.234", VRel: "5.678"},
		{Des: "2020 AB", CD: "2020-Jan-01 12:00", Dist: "0.05", VRel: "12.5"},
	}
	if diff := cmp.Diff(want, recs); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestReadApproaches_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
		want    string
	}{
		{"malformed json", `{"data": [`, nil, "unexpected EOF"},
		{"missing data", `{"count": "0"}`, ErrMissingData, "data"},
		{"null data", `{"data": null}`, ErrMissingData, "data"},
		{"short row", `{"data": [["433", "1", "2", "1900-Jan-01 00:11", "1.2"]]}`, ErrShortRow, "row 1"},
		{"object cell", `{"data": [[{}, "1", "2", "1900-Jan-01 00:11", "1.2", "", "", "5"]]}`, nil, "column des"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadApproaches(writeTemp(t, "cad.json", tc.content))
			require.Error(t, err)
			if tc.target != nil {
				require.ErrorIs(t, err, tc.target)
			}
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestReadApproaches_EmptyData(t *testing.T) {
	recs, err := ReadApproaches(writeTemp(t, "cad.json", `{"data": []}`))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestExtractor_WarnsOnFieldsMismatch(t *testing.T) {
	doc := strings.Replace(testCADJSON, `"v_rel"`, `"v_inf_x"`, 1)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	ext := NewExtractor("", writeTemp(t, "cad.json", doc), logger)
	recs, err := ext.ApproachRecords(context.Background())

	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Contains(t, logs.String(), "fields disagree")
	assert.Contains(t, logs.String(), "expected=v_rel")
}

func TestExtractor_ApproachRecordsMatchReadApproaches(t *testing.T) {
	path := writeTemp(t, "cad.json", testCADJSON)
	ext := NewExtractor("", path, discardLogger())

	fromExtractor, err := ext.ApproachRecords(context.Background())
	require.NoError(t, err)
	fromFile, err := ReadApproaches(path)
	require.NoError(t, err)
	if diff := cmp.Diff(fromFile, fromExtractor); diff != "" {
		t.Fatalf("records mismatch (-file +extractor):\n%s", diff)
	}

	bad := writeTemp(t, "bad.json", `{"data": [["433", "1", "2", "1900-Jan-01 00:11", "1.2"]]}`)
	_, extErr := NewExtractor("", bad, discardLogger()).ApproachRecords(context.Background())
	_, fileErr := ReadApproaches(bad)
	require.ErrorIs(t, extErr, ErrShortRow)
	assert.Equal(t, fileErr.Error(), extErr.Error())
}

func TestExtractor_NEORecords(t *testing.T) {
	ext := NewExtractor(writeTemp(t, "neos.csv", testNEOCSV), "", discardLogger())

	recs, err := ext.NEORecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestFieldsMismatch(t *testing.T) {
	_, _, ok := fieldsMismatch(nil)
	assert.False(t, ok)

	_, _, ok = fieldsMismatch([]string{"des", "orbit_id", "jd", "cd", "dist", "dist_min", "dist_max", "v_rel"})
	assert.False(t, ok)

	_, pos, ok := fieldsMismatch([]string{"des", "orbit_id", "jd", "cd"})
	assert.True(t, ok)
	assert.Equal(t, colDist, pos)
}
