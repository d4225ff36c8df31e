package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/clrkit/cilmeta/attr"
	"github.com/clrkit/cilmeta/blob"
	"github.com/clrkit/cilmeta/metadata"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateInput modelState = iota
	stateShowResult
)

type interactiveModel struct {
	u        *metadata.Module
	inputs   []textinput.Model
	focusIdx int
	state    modelState
	result   string
	err      error
}

const (
	inputCtor = iota
	inputBlob
)

func newInteractiveModel(u *metadata.Module, ctorSig, blobHex string) *interactiveModel {
	ctor := textinput.New()
	ctor.Prompt = "ctor: "
	ctor.Placeholder = "My.Ns.FooAttribute(int32, string)"
	ctor.Width = 60
	ctor.SetValue(ctorSig)
	ctor.Focus()

	hexIn := textinput.New()
	hexIn.Prompt = "blob: "
	hexIn.Placeholder = "01 00 2A 00 00 00 00 00"
	hexIn.Width = 60
	hexIn.SetValue(blobHex)

	return &interactiveModel{
		u:      u,
		inputs: []textinput.Model{inputCtor: ctor, inputBlob: hexIn},
		state:  stateInput,
	}
}

type decodedMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateShowResult {
				return m, tea.Quit
			}

		case "tab":
			if m.state == stateInput {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "enter":
			switch m.state {
			case stateInput:
				return m, m.decodeBlob
			case stateShowResult:
				m.state = stateInput
				m.result = ""
				m.err = nil
				return m, nil
			}

		case "esc":
			if m.state == stateShowResult {
				m.state = stateInput
				m.result = ""
				m.err = nil
			}
		}

	case decodedMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInput {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) decodeBlob() tea.Msg {
	ctor, err := parseCtor(m.u, m.inputs[inputCtor].Value())
	if err != nil {
		return decodedMsg{err: err}
	}
	data, err := parseHex(m.inputs[inputBlob].Value())
	if err != nil {
		return decodedMsg{err: err}
	}

	ca := attr.DecodeReader(m.u, ctor, blob.NewReader(data))
	return decodedMsg{result: renderAttribute(ca)}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Attribute Blob Decoder"))
	b.WriteString("\n\n")

	switch m.state {
	case stateInput:
		b.WriteString(labelStyle.Render("Constructor signature and blob bytes:"))
		b.WriteString("\n\n")
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter decode • ctrl+c quit"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(m.result)
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter decode another • q quit"))
	}

	return b.String()
}

func runInteractive(u *metadata.Module, ctorSig, blobHex string) error {
	p := tea.NewProgram(newInteractiveModel(u, ctorSig, blobHex), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
