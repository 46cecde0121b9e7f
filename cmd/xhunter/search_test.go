package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/x-hunter/internal/timeline"
	"github.com/stretchr/testify/assert"
)

func TestPrintTweet(t *testing.T) {
	var buf bytes.Buffer
	printTweet(&buf, 1, timeline.Tweet{ID: "42", Username: "ada", Text: "first line\nsecond   line"})

	assert.Equal(t, "1. @ada (42) first line second line\n", buf.String())
}

func TestPrintTweet_Truncates(t *testing.T) {
	var buf bytes.Buffer
	printTweet(&buf, 2, timeline.Tweet{ID: "1", Username: "ada", Text: strings.Repeat("a", 300)})

	line := strings.TrimSuffix(buf.String(), "\n")
	assert.True(t, strings.HasSuffix(line, "..."))
	assert.Equal(t, len("2. @ada (1) ")+summaryWidth, len(line))
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	printProfile(&buf, 3, timeline.Profile{Username: "ada", Name: "Ada", Followers: 10, Biography: "engines\nand notes"})

	assert.Equal(t, "3. @ada Ada, 10 followers: engines and notes\n", buf.String())
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["search"])
	assert.True(t, names["profiles"])
	assert.True(t, names["space"])
}

func TestSearchCommand_ModeHelpNamesRejectedUsers(t *testing.T) {
	usage := searchCmd.Flags().Lookup("mode").Usage

	assert.Contains(t, usage, "users is rejected")
	assert.Contains(t, usage, "profiles")
}
