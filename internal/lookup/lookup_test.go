package lookup

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/pledge-extract/internal/logging"
	"fjacquet/pledge-extract/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadCSVPreJoined(t *testing.T) {
	path := writeTempFile(t, "lookup.csv",
		"fullName,ACCOUNTNUMBER\n"+
			"JAMES ROBERT BOYD,1001\n"+
			"FREDERICK B HUSSEY,1002\n")

	table, err := Load(path, &logging.MockLogger{})
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	entry, ok := table.Find("J BOYD")
	require.True(t, ok)
	assert.Equal(t, "1001", entry.AccountNumber)
	assert.Equal(t, "JAMES ROBERT BOYD", entry.FullName)

	entry, ok = table.Find("F HUSSEY")
	require.True(t, ok)
	assert.Equal(t, "1002", entry.AccountNumber)
}

func TestLoadCSVSplitSchema(t *testing.T) {
	path := writeTempFile(t, "lookup.csv",
		"firstName,lastName,ACCOUNTNUMBER\n"+
			"James,Boyd,1001\n"+
			"Frederick,Hussey,1002\n")

	table, err := Load(path, &logging.MockLogger{})
	require.NoError(t, err)

	entry, ok := table.Find("J BOYD")
	require.True(t, ok)
	assert.Equal(t, "1001", entry.AccountNumber)
	assert.Equal(t, "JAMES BOYD", entry.FullName)
}

func TestLoadCSVMissingColumns(t *testing.T) {
	path := writeTempFile(t, "lookup.csv",
		"donor,account\nJAMES BOYD,1001\n")

	_, err := Load(path, &logging.MockLogger{})
	require.Error(t, err)

	var schemaErr *parsererror.LookupSchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestLoadCSVAmbiguousKeyFirstWins(t *testing.T) {
	// Two table entries sharing an abbreviation key: the first occurrence
	// wins. This tie-break can be wrong for conflicting homonyms and is
	// pinned here as deliberate behavior.
	path := writeTempFile(t, "lookup.csv",
		"fullName,ACCOUNTNUMBER\n"+
			"JAMES BOYD,1001\n"+
			"JANE BOYD,2002\n")

	table, err := Load(path, &logging.MockLogger{})
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	entry, ok := table.Find("J BOYD")
	require.True(t, ok)
	assert.Equal(t, "1001", entry.AccountNumber)
	assert.Equal(t, "JAMES BOYD", entry.FullName)
}

func TestLoadYAML(t *testing.T) {
	path := writeTempFile(t, "lookup.yaml",
		"- fullName: JAMES ROBERT BOYD\n"+
			"  ACCOUNTNUMBER: \"1001\"\n"+
			"- fullName: ANNA LEE\n"+
			"  ACCOUNTNUMBER: \"1003\"\n")

	table, err := Load(path, &logging.MockLogger{})
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	entry, ok := table.Find("A LEE")
	require.True(t, ok)
	assert.Equal(t, "1003", entry.AccountNumber)
}

func TestLoadYAMLSplitSchema(t *testing.T) {
	path := writeTempFile(t, "lookup.yml",
		"- firstName: Anna\n"+
			"  lastName: Lee\n"+
			"  ACCOUNTNUMBER: \"1003\"\n")

	table, err := Load(path, &logging.MockLogger{})
	require.NoError(t, err)

	entry, ok := table.Find("A LEE")
	require.True(t, ok)
	assert.Equal(t, "ANNA LEE", entry.FullName)
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lookup.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "fullName"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "ACCOUNTNUMBER"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "JAMES ROBERT BOYD"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "1001"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Load(path, &logging.MockLogger{})
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	entry, ok := table.Find("J BOYD")
	require.True(t, ok)
	assert.Equal(t, "1001", entry.AccountNumber)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "lookup.txt", "whatever")
	_, err := Load(path, &logging.MockLogger{})
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"), &logging.MockLogger{})
	assert.Error(t, err)
}
