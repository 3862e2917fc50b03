package forms

// Input classes per presentation. Every state removes the classes of the
// other two, so an input's classes depend only on its current state.
const (
	neutralInputClasses = "border-slate-200 focus:border-brand-500 focus:ring-brand-100 text-slate-700"
	errorInputClasses   = "border-error text-error focus:border-error focus:ring-error/10 bg-red-50"
	successInputClasses = "border-success text-success bg-green-50"

	neutralIconClass = "text-slate-400"
	errorIconClass   = "text-error"
	successIconClass = "text-success"

	hiddenClass = "hidden"
)

// Present applies the presentation for a validity result to the field's
// input group and returns it. Calling it again with the same arguments
// changes nothing.
func Present(f *Field, valid, hasContent bool) Presentation {
	f.rememberDefaultIcon()

	switch Classify(valid, hasContent) {
	case Error:
		applyError(f)
	case Success:
		applySuccess(f)
	default:
		reset(f)
	}
	return f.presentation
}

// Reset returns the field to the neutral state and restores its default icon.
func Reset(f *Field) {
	f.rememberDefaultIcon()
	reset(f)
}

func applyError(f *Field) {
	g := f.Group
	setInputClasses(f, errorInputClasses)
	if g.Icon != nil {
		g.Icon.Inner = IconAlert
		setIconClass(f, errorIconClass)
	}
	if g.ErrorMsg != nil {
		g.ErrorMsg.Classes.Remove(hiddenClass)
	}
	f.presentation = Error
}

func applySuccess(f *Field) {
	g := f.Group
	setInputClasses(f, successInputClasses)
	if g.Icon != nil {
		g.Icon.Inner = IconCheck
		setIconClass(f, successIconClass)
	}
	if g.ErrorMsg != nil {
		g.ErrorMsg.Classes.Add(hiddenClass)
	}
	f.presentation = Success
}

func reset(f *Field) {
	g := f.Group
	setInputClasses(f, neutralInputClasses)
	if g.Icon != nil {
		if icon, ok := f.DefaultIcon(); ok {
			g.Icon.Inner = icon
		}
		setIconClass(f, neutralIconClass)
	}
	if g.ErrorMsg != nil {
		g.ErrorMsg.Classes.Add(hiddenClass)
	}
	f.presentation = Neutral
}

func setInputClasses(f *Field, classes string) {
	if f.Group.Input == nil {
		return
	}
	f.Group.Input.Classes.Remove(neutralInputClasses, errorInputClasses, successInputClasses)
	f.Group.Input.Classes.Add(classes)
}

func setIconClass(f *Field, class string) {
	f.Group.Icon.Classes.Remove(neutralIconClass, errorIconClass, successIconClass)
	f.Group.Icon.Classes.Add(class)
}
