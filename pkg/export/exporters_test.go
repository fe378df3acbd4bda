package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func registerDataset() Dataset {
	return Dataset{
		Headers: []string{"S.No", "Name", "Register Number", "Overall Attendance %"},
		Rows: []map[string]string{
			{"S.No": "1", "Name": "Anu", "Register Number": "101", "Overall Attendance %": "70.0"},
			{"S.No": "2", "Name": "Bala", "Register Number": "102", "Overall Attendance %": "90.0"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	data, err := NewCSVExporter().Render(registerDataset())
	require.NoError(t, err)
	require.Equal(t, "S.No,Name,Register Number,Overall Attendance %\n1,Anu,101,70.0\n2,Bala,102,90.0\n", string(data))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestXLSXExporterRender(t *testing.T) {
	data, err := NewXLSXExporter().Render(registerDataset())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"S.No", "Name", "Register Number", "Overall Attendance %"}, rows[0])
	require.Equal(t, "Anu", rows[1][1])
	require.Equal(t, "90.0", rows[2][3])
}

func TestPDFExporterRender(t *testing.T) {
	data, err := NewPDFExporter().Render(registerDataset(), "Attendance Register")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
