package document

import (
	"testing"

	"github.com/runoshun/taskgraph/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHCL(t *testing.T) {
	text := `
dagrs {
  task "build" {
    name  = "Build"
    after = ["fetch"]
    cmd   = "make"
  }

  task "fetch" {
    name = "Fetch"
    cmd  = "git fetch"
  }

  task "report" {
    name    = "Report"
    after   = ["build", 7]
    retries = 3
    quiet   = true
    labels  = { team = "infra" }
  }
}
`
	doc, err := NewDecoder().Decode("tasks.hcl", text, "", "")
	require.NoError(t, err)
	require.Len(t, doc.Entries, 3)

	assert.Equal(t, "build", doc.Entries[0].ID)
	assert.Equal(t, "fetch", doc.Entries[1].ID)
	assert.Equal(t, "report", doc.Entries[2].ID)
	assert.Equal(t, 3, doc.Entries[0].Line)

	assert.Equal(t, []any{"fetch"}, doc.Entries[0].Fields["after"])

	report := doc.Entries[2].Fields
	assert.Equal(t, []any{"build", int64(7)}, report["after"])
	assert.Equal(t, int64(3), report["retries"])
	assert.Equal(t, true, report["quiet"])
	assert.Equal(t, map[string]any{"team": "infra"}, report["labels"])
	_, hasCmd := report["cmd"]
	assert.False(t, hasCmd)
}

func TestDecodeHCL_NullAttribute(t *testing.T) {
	text := `
dagrs {
  task "a" {
    name  = "A"
    after = null
    cmd   = "true"
  }
}
`
	doc, err := NewDecoder().Decode("tasks.hcl", text, "", "")
	require.NoError(t, err)
	v, present := doc.Entries[0].Fields["after"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestDecodeHCL_IgnoresOtherTopLevelContent(t *testing.T) {
	text := `
version = 2

dagrs {
  task "a" {
    name = "A"
    cmd  = "true"
  }
}
`
	doc, err := NewDecoder().Decode("tasks.hcl", text, "", "")
	require.NoError(t, err)
	assert.Len(t, doc.Entries, 1)
}

func TestDecodeHCL_Errors(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		text    string
	}{
		{name: "syntax error", text: "dagrs {\n  task \"a\" {\n", wantErr: domain.ErrIllegalDocument},
		{name: "missing root block", text: "other {\n}\n", wantErr: domain.ErrMissingRootKey},
		{name: "empty root block", text: "dagrs {\n}\n", wantErr: domain.ErrEmptyDocument},
		{name: "two root blocks", text: "dagrs {\n}\ndagrs {\n}\n", wantErr: domain.ErrIllegalDocument},
		{name: "task without label", text: "dagrs {\n  task {\n    name = \"A\"\n  }\n}\n", wantErr: domain.ErrIllegalDocument},
		{name: "unexpected attribute in root", text: "dagrs {\n  x = 1\n}\n", wantErr: domain.ErrIllegalDocument},
		{name: "variable reference", text: "dagrs {\n  task \"a\" {\n    name = var.name\n  }\n}\n", wantErr: domain.ErrIllegalDocument},
		{
			name:    "duplicate ids",
			text:    "dagrs {\n  task \"a\" {\n    name = \"A\"\n  }\n  task \"a\" {\n    name = \"B\"\n  }\n}\n",
			wantErr: domain.ErrDuplicateID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewDecoder().Decode("tasks.hcl", tt.text, "", "")
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, doc)
		})
	}
}
