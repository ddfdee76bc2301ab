package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/wordcrane/pkg/level"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type LevelsCommand struct {
	Levels string `long:"levels" description:"YAML campaign file (default: built-in levels)"`
}

func (c *LevelsCommand) Execute(args []string) error {
	path := c.Levels
	if path == "" {
		cfg, _, closer, err := loadRuntime()
		if err != nil {
			return err
		}
		closer.Close()
		path = cfg.Levels
	}

	campaign, err := level.Load(path)
	if err != nil {
		return err
	}

	source := path
	if source == "" {
		source = "built-in"
	}
	fmt.Println(headerStyle.Render("Wordcrane levels") + " " + dimStyle.Render("("+source+")"))
	fmt.Println(levelTable(campaign))
	return nil
}

func levelTable(campaign *level.Catalog) string {
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	wordStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true).Padding(0, 1)
	thStyle := headerStyle.Padding(0, 1)

	rows := make([][]string, 0, campaign.Len())
	for _, l := range campaign.Levels {
		rows = append(rows, []string{
			strconv.Itoa(l.ID),
			l.Word,
			strings.Join(l.Phonemes, "-"),
			string(l.Objective()),
			l.Mode.String(),
			joinInts(l.Prefilled),
			strings.Join(l.Distractors, " "),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("#", "Word", "Letters", "Objective", "Spawn", "Given", "Distractors").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return thStyle
			case col == 1:
				return wordStyle
			default:
				return cellStyle
			}
		}).
		Render()
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n + 1)
	}
	return strings.Join(parts, ",")
}
