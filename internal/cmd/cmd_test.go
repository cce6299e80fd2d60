package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingsCSV = `category_url,price_pkr,rating,reviews,product_name
https://www.banggood.com/Wholesale-Electronics-c-1.html,1000,4.5,120,Phone Case
https://www.banggood.com/Wholesale-Tools-c-2.html,2500,4.0,30,Cordless Drill
https://www.banggood.com/Wholesale-Electronics-c-1.html,500,3.5,10,USB Cable
`

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listings.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "lensctl" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "lensctl")
	}

	expected := map[string]bool{"render": false, "categories": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := expected[c.Name()]; ok {
			expected[c.Name()] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	t.Run("writes a standalone page", func(t *testing.T) {
		csvPath := writeCSV(t, listingsCSV)
		out := filepath.Join(t.TempDir(), "dashboard.html")

		output, err := executeCommand(rootCmd, "render", csvPath, "--out", out, "--width", "320", "--height", "240")
		require.NoError(t, err)
		assert.Contains(t, output, "Wrote "+out+" (3 rows, 2 categories)")

		html, err := os.ReadFile(out)
		require.NoError(t, err)
		page := string(html)
		assert.Contains(t, page, "Unique Categories Found:")
		assert.Contains(t, page, "Electronics")
		assert.Equal(t, 5, strings.Count(page, "data:image/svg&#43;xml;base64,"))
		assert.NotContains(t, page, "Open chart")
	})

	t.Run("writes to stdout", func(t *testing.T) {
		csvPath := writeCSV(t, listingsCSV)

		output, err := executeCommand(rootCmd, "render", csvPath, "--out", "-", "--width", "320", "--height", "240")
		require.NoError(t, err)
		assert.Contains(t, output, "<!DOCTYPE html>")
	})

	t.Run("rejects a file missing columns", func(t *testing.T) {
		csvPath := writeCSV(t, "category_url,price_pkr\nhttp://x,1\n")

		_, err := executeCommand(rootCmd, "render", csvPath, "--out", "-")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid listing file")
		assert.Contains(t, err.Error(), "rating")
	})

	t.Run("missing input file", func(t *testing.T) {
		_, err := executeCommand(rootCmd, "render", filepath.Join(t.TempDir(), "nope.csv"), "--out", "-")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open")
	})

	t.Run("requires exactly one argument", func(t *testing.T) {
		_, err := executeCommand(rootCmd, "render")
		assert.Error(t, err)
	})
}

func TestCategoriesCommand(t *testing.T) {
	t.Run("prints a table", func(t *testing.T) {
		csvPath := writeCSV(t, listingsCSV)

		output, err := executeCommand(rootCmd, "categories", csvPath, "--json=false")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(output), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "CATEGORY"))
		assert.Equal(t, []string{"Electronics", "2"}, strings.Fields(lines[1]))
		assert.Equal(t, []string{"Tools", "1"}, strings.Fields(lines[2]))
	})

	t.Run("prints JSON", func(t *testing.T) {
		csvPath := writeCSV(t, listingsCSV)

		output, err := executeCommand(rootCmd, "categories", csvPath, "--json")
		require.NoError(t, err)

		var counts []categoryCount
		require.NoError(t, json.Unmarshal([]byte(output), &counts))
		assert.Equal(t, []categoryCount{{Category: "Electronics", Rows: 2}, {Category: "Tools", Rows: 1}}, counts)
	})
}
