package engine

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CodeDeficient/KarpeSlop/internal/ir"
)

var update = flag.Bool("update", false, "rewrite golden files")

// The snapshot pins the externally visible shape of a run: consolidated
// findings and the score. Raw issues are covered elsewhere.
type snapshot struct {
	Consolidated []ir.ConsolidatedIssue `json:"consolidated"`
	Score        ir.ScoreBreakdown      `json:"score"`
}

func TestGoldenSnapshot(t *testing.T) {
	files := []ir.SourceFile{
		{
			Path: "components/Profile.tsx",
			Content: "import { useRouter } from 'react';\n" +
				"\n" +
				"const data: any = {};\n" +
				"console.log(data);\n",
		},
	}
	res, err := Detect(files, nil, false)
	require.NoError(t, err)

	got, err := json.MarshalIndent(snapshot{
		Consolidated: res.Consolidated,
		Score:        res.Score,
	}, "", "  ")
	require.NoError(t, err)

	golden := filepath.Join("testdata", "snapshot.json")
	if *update {
		require.NoError(t, os.WriteFile(golden, append(got, '\n'), 0o644))
	}
	want, err := os.ReadFile(golden)
	require.NoError(t, err)
	require.Equal(t, strings.TrimSpace(string(want)), strings.TrimSpace(string(got)),
		"run with -update to rewrite the snapshot")
}
