package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Age slider bounds and starting value.
const (
	MinAge     = 0
	MaxAge     = 100
	DefaultAge = 25
)

type homeField int

const (
	fieldName homeField = iota
	fieldAge
)

// homePage holds the Home view controls.
type homePage struct {
	name  textinput.Model
	age   int
	focus homeField
}

func newHomePage() homePage {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.Prompt = "› "
	ti.CharLimit = 64
	ti.Width = 32
	ti.Focus()

	return homePage{name: ti, age: DefaultAge, focus: fieldName}
}

// typing reports whether keystrokes go to the name field.
func (p homePage) typing() bool {
	return p.focus == fieldName
}

func (p *homePage) setFocus(f homeField) {
	p.focus = f
	if f == fieldName {
		p.name.Focus()
		return
	}
	p.name.Blur()
}

// Greeting is the Home view's response, empty until a name is entered.
func Greeting(name string, age int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return fmt.Sprintf("Hello, %s! You are %d years old.", name, age)
}

func (p *homePage) update(msg tea.Msg) tea.Cmd {
	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		p.name, cmd = p.name.Update(msg)
		return cmd
	}

	if p.focus == fieldName {
		switch key.String() {
		case KeyEnter, KeyDown, KeyClose:
			p.setFocus(fieldAge)
			return nil
		}
		var cmd tea.Cmd
		p.name, cmd = p.name.Update(msg)
		return cmd
	}

	switch key.String() {
	case KeyUp, KeyUpK, KeyEnter:
		p.setFocus(fieldName)
		return textinput.Blink
	case KeyLeft, KeyLeftH:
		p.age = max(MinAge, p.age-1)
	case KeyRight, KeyRightL:
		p.age = min(MaxAge, p.age+1)
	case KeyPageDown:
		p.age = max(MinAge, p.age-10)
	case KeyPageUp:
		p.age = min(MaxAge, p.age+10)
	case KeyFirst:
		p.age = MinAge
	case KeyLast:
		p.age = MaxAge
	}
	return nil
}

func (p homePage) view(width int) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Welcome to the Data Analytics Dashboard"))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("This dashboard demonstrates sample data analysis, interactive charts, a real-time metrics simulation and CSV upload."))
	b.WriteString("\n\n")

	label := LabelStyle
	if p.focus == fieldName {
		label = FocusStyle
	}
	b.WriteString(label.Render("Enter your name"))
	b.WriteString("\n")
	b.WriteString(p.name.View())
	b.WriteString("\n\n")

	label = LabelStyle
	if p.focus == fieldAge {
		label = FocusStyle
	}
	b.WriteString(label.Render("Select your age"))
	b.WriteString("\n")
	sliderWidth := min(max(width-16, 10), 40)
	b.WriteString(fmt.Sprintf("%s %s  %s",
		MutedStyle.Render(fmt.Sprint(MinAge)),
		Slider(sliderWidth, p.age, MinAge, MaxAge),
		MutedStyle.Render(fmt.Sprint(MaxAge))))
	b.WriteString("  ")
	b.WriteString(ValueStyle.Render(fmt.Sprint(p.age)))

	if g := Greeting(p.name.Value(), p.age); g != "" {
		b.WriteString("\n\n")
		b.WriteString(SuccessStyle.Render(g))
	}

	return b.String()
}
