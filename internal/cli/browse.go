package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/lexcloud/lexcloud/pkg/corpus"
	"github.com/lexcloud/lexcloud/pkg/freq"
	"github.com/lexcloud/lexcloud/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newBrowseCmd creates the browse command: an interactive corpus
// browser showing per-document token statistics.
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [paths...]",
		Short: "Browse corpus documents and their top tokens interactively",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := corpus.Load(args...)
			if err != nil {
				return err
			}

			model, err := newBrowseModel(c)
			if err != nil {
				return err
			}

			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// docSummary holds precomputed statistics for one document.
type docSummary struct {
	Name      string
	Tokens    int // total tokens after filtering
	Distinct  int
	TopTokens []freq.Entry
}

// browseModel is the bubbletea model for the corpus browser.
type browseModel struct {
	Docs   []docSummary
	Cursor int
	Height int
	Offset int
}

// newBrowseModel tokenizes every document up front; corpora are small
// enough that precomputing beats incremental loading.
func newBrowseModel(c *corpus.Corpus) (browseModel, error) {
	streams, err := pipeline.Tokenize(c, pipeline.Options{})
	if err != nil {
		return browseModel{}, err
	}

	docs := make([]docSummary, len(c.Docs))
	for i, doc := range c.Docs {
		s := docSummary{Name: doc.Name, Tokens: len(streams[i])}
		t, err := freq.Build(streams[i], freq.Options{MaxWords: 10})
		if err == nil {
			s.Distinct = t.Len()
			s.TopTokens = t.Entries
		}
		docs[i] = s
	}

	return browseModel{Docs: docs, Height: 15}, nil
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Docs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Corpus Browser"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Docs) {
		end = len(m.Docs)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		d := m.Docs[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			d.Name,
			fmt.Sprintf("%d", d.Tokens),
			fmt.Sprintf("%d", d.Distinct),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Document", "Tokens", "Distinct").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	// Top tokens of the selected document.
	if m.Cursor < len(m.Docs) {
		d := m.Docs[m.Cursor]
		b.WriteString(StyleDim.Render("Top tokens: "))
		parts := make([]string, 0, len(d.TopTokens))
		for _, e := range d.TopTokens {
			parts = append(parts, fmt.Sprintf("%s (%.0f)", e.Token, e.Weight))
		}
		b.WriteString(StyleValue.Render(strings.Join(parts, ", ")))
		b.WriteString("\n")
	}

	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Docs))))
	return b.String()
}
