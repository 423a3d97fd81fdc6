package gradebook

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = `First Name, Last Name,SID,Email,Sections,Quiz 1,Quiz 1 - Max Points,Quiz 1 - Submission Time,Quiz 1 - Lateness (H:M:S),Pset 2,Pset 2 - Max Points,Pset 2 Self-grade,Total Lateness (H:M:S)
Ada,Lovelace,1001,ada@example.edu,101,9,10,2024-01-01,0:00:00,18.5,,excused,0:00:00
Alan,Turing,1002,alan@example.edu,102,,10,,,20,20,3,1:00:00
,Hopper,1003,grace@example.edu,101,7,,,,15,20,2,0:00:00
`

func TestSniffDelimiter(t *testing.T) {
	cases := []struct {
		line string
		want rune
	}{
		{"a,b,c", ','},
		{"a;b;c", ';'},
		{"a\tb\tc", '\t'},
		{"a|b|c,d", '|'},
		{"single", ','},
	}
	for _, v := range cases {
		if got := SniffDelimiter(v.line); got != v.want {
			t.Errorf("SniffDelimiter(%q) == %q, want %q", v.line, got, v.want)
		}
	}
}

func TestRead(t *testing.T) {
	tbl, err := Read(strings.NewReader(export))
	require.NoError(t, err)

	assert.Equal(t, "Last Name", tbl.Header[1], "header names are trimmed")
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, "Lovelace", tbl.Get(tbl.Rows[0], "Last Name"))
	assert.Equal(t, "", tbl.Get(tbl.Rows[0], "No Such Column"))
}

func TestReadSemicolon(t *testing.T) {
	tbl, err := Read(strings.NewReader("First Name;Last Name;Quiz 1\nAda;Lovelace;9\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"First Name", "Last Name", "Quiz 1"}, tbl.Header)
	assert.Equal(t, "9", tbl.Get(tbl.Rows[0], "Quiz 1"))
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestGuessColumns(t *testing.T) {
	tbl, err := Read(strings.NewReader(export))
	require.NoError(t, err)

	scores, maxFor := GuessColumns(tbl.Header)
	assert.Equal(t, []string{"Quiz 1", "Pset 2", "Pset 2 Self-grade"}, scores)
	assert.Equal(t, map[string]string{
		"Quiz 1": "Quiz 1 - Max Points",
		"Pset 2": "Pset 2 - Max Points",
	}, maxFor)
}

func TestConvert(t *testing.T) {
	tbl, err := Read(strings.NewReader(export))
	require.NoError(t, err)
	scores, _ := GuessColumns(tbl.Header)

	out := Convert(tbl, scores)
	assert.Equal(t, []string{
		"Student", "ID", "SIS User ID", "SIS Login ID", "Section",
		"Quiz 1", "Pset 2", "Pset 2 Self-grade",
	}, out.Header)

	require.Len(t, out.Rows, 4)
	assert.Equal(t, []string{"Points Possible", "", "", "", "", "10.0", "20.0", ""}, out.Rows[0])
	assert.Equal(t, []string{"Lovelace, Ada", "", "1001", "ada@example.edu", "101", "9.0", "18.5", "excused"}, out.Rows[1])
	assert.Equal(t, []string{"Turing, Alan", "", "1002", "alan@example.edu", "102", "", "20.0", "3.0"}, out.Rows[2])
	assert.Equal(t, "Hopper", out.Rows[3][0], "missing first name leaves no trailing separator")
}

func TestConvertSubsetOfColumns(t *testing.T) {
	tbl, err := Read(strings.NewReader(export))
	require.NoError(t, err)

	out := Convert(tbl, []string{"Pset 2"})
	assert.Equal(t, "Pset 2", out.Header[len(out.Header)-1])
	assert.Equal(t, "20.0", out.Rows[0][5])
	assert.Len(t, out.Rows[1], 6)
}

func TestWrite(t *testing.T) {
	out := NewTable([]string{"Student", "Quiz 1"}, [][]string{{"Points Possible", "10.0"}, {"Lovelace, Ada", "9.0"}})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, out))
	assert.Equal(t, "Student,Quiz 1\nPoints Possible,10.0\n\"Lovelace, Ada\",9.0\n", buf.String())
}

func TestFormatScore(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"  ", ""},
		{"10", "10.0"},
		{"9.25", "9.25"},
		{" 3 ", "3.0"},
		{"A+", "A+"},
	}
	for _, v := range cases {
		if got := formatScore(v.in); got != v.want {
			t.Errorf("formatScore(%q) == %q, want %q", v.in, got, v.want)
		}
	}
}
