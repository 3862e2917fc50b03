package forms

import "github.com/nfrund/authpanel/internal/dom"

// Bucket is a named strength tier.
type Bucket int

const (
	Weak Bucket = iota
	Medium
	Strong
)

func (b Bucket) String() string {
	switch b {
	case Medium:
		return "Medium"
	case Strong:
		return "Strong"
	default:
		return "Weak"
	}
}

// Strength describes how the meter renders a password's score.
type Strength struct {
	Level      int    `json:"level"`
	Bucket     Bucket `json:"-"`
	Label      string `json:"label"`
	Width      string `json:"width"`
	BarClass   string `json:"bar_class"`
	LabelClass string `json:"label_class"`
}

// Score rates a password from 0 to 5, one point per satisfied criterion:
// longer than 5, longer than 8, an uppercase letter, a digit, and a
// character outside [A-Za-z0-9].
func Score(password string) Strength {
	n := utf16Len(password)
	var upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
		default:
			special = true
		}
	}

	level := 0
	for _, ok := range []bool{n > 5, n > 8, upper, digit, special} {
		if ok {
			level++
		}
	}

	switch {
	case level <= 2:
		return Strength{Level: level, Bucket: Weak, Label: Weak.String(), Width: "30%", BarClass: "bg-error", LabelClass: "text-error"}
	case level <= 4:
		return Strength{Level: level, Bucket: Medium, Label: Medium.String(), Width: "70%", BarClass: "bg-yellow-500", LabelClass: "text-yellow-600"}
	default:
		return Strength{Level: level, Bucket: Strong, Label: Strong.String(), Width: "100%", BarClass: "bg-success", LabelClass: "text-success"}
	}
}

// Meter holds the strength bar and label handles.
type Meter struct {
	Bar   *dom.Element
	Label *dom.Element
}

func newMeter() Meter {
	bar := dom.New("strengthBar", "h-full strength-bar")
	bar.SetStyle("width", "0%")
	return Meter{
		Bar:   bar,
		Label: dom.New("strengthText", "text-[10px] text-slate-400 mt-1 font-semibold"),
	}
}

// Render applies a strength descriptor to the bar and label.
func (m Meter) Render(s Strength) {
	m.Bar.SetStyle("width", s.Width)
	m.Bar.Classes.Set("h-full " + s.BarClass + " strength-bar")
	m.Label.Text = s.Label
	m.Label.Classes.Set("text-[10px] " + s.LabelClass + " mt-1 font-semibold")
}
