package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title       lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
	Star        lipgloss.Style
	Arabic      lipgloss.Style
	Translation lipgloss.Style
	Button      lipgloss.Style
	Banner      lipgloss.Style
	PopupBox    lipgloss.Style
	PopupTitle  lipgloss.Style
	TableStyles TableStyles
}

type TableStyles struct {
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Selected lipgloss.Style
}

func NewStyles(dark bool) Styles {
	s := Styles{}
	if dark {
		s.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		s.Arabic = lipgloss.NewStyle().Foreground(lipgloss.Color("230"))
		s.Translation = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("152"))
		s.Button = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("81")).Padding(0, 1)
		s.Banner = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(1, 2)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	} else {
		s.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
		s.Status = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Arabic = lipgloss.NewStyle()
		s.Translation = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("24"))
		s.Button = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("27")).Padding(0, 1)
		s.Banner = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("228"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(1, 2)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
	}
	s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	s.Star = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	s.TableStyles = TableStyles{
		Header:   lipgloss.NewStyle().Bold(true).PaddingRight(1),
		Cell:     lipgloss.NewStyle().PaddingRight(1),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
	}
	return s
}
