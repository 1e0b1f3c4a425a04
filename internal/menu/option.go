// Package menu describes navigable menu entries and derives the settings
// menu from a settings snapshot.
package menu

// Kind tags the variant of an Option.
type Kind string

const (
	KindView        Kind = "View"
	KindActionSheet Kind = "ActionSheet"
	KindAction      Kind = "Action"
)

// ViewID is the fixed identity of a view or popup in the menu stack.
type ViewID string

const (
	ViewSettings         ViewID = "settings"
	ViewAbout            ViewID = "about"
	ViewServiceTypeSheet ViewID = "serviceTypeActionSheet"
	ViewDeviceThemeSheet ViewID = "deviceThemeActionSheet"
	ViewDeviceSideSheet  ViewID = "deviceSideActionSheet"
	ViewSignInPopup      ViewID = "signinPopup"
	ViewSignOutPopup     ViewID = "signOutPopup"
)

// Preview names the illustration shown next to a focused entry.
type Preview string

const (
	PreviewNone     Preview = ""
	PreviewSettings Preview = "settings"
	PreviewService  Preview = "service"
	PreviewDevice   Preview = "device"
	PreviewMusic    Preview = "music"
)

// Option is one renderable entry of a menu. The set of implementations is
// closed: ViewOption, ActionSheetOption and ActionOption.
type Option interface {
	Kind() Kind
	Text() string
	isOption()
}

// ViewOption opens another view when selected.
type ViewOption struct {
	Label     string
	ViewID    ViewID
	Component ViewID
	Preview   Preview
}

// ActionSheetOption opens a popup listing Actions.
type ActionSheetOption struct {
	ID      ViewID
	Label   string
	Actions []ActionOption
	Preview Preview
}

// ActionOption is a leaf bound to an effect.
type ActionOption struct {
	ID         string
	Label      string
	IsSelected bool
	OnSelect   func()
}

func (ViewOption) Kind() Kind        { return KindView }
func (ActionSheetOption) Kind() Kind { return KindActionSheet }
func (ActionOption) Kind() Kind      { return KindAction }

func (o ViewOption) Text() string        { return o.Label }
func (o ActionSheetOption) Text() string { return o.Label }
func (o ActionOption) Text() string      { return o.Label }

func (ViewOption) isOption()        {}
func (ActionSheetOption) isOption() {}
func (ActionOption) isOption()      {}

// PreviewOf returns the preview attached to an option, if any.
func PreviewOf(o Option) Preview {
	switch o := o.(type) {
	case ViewOption:
		return o.Preview
	case ActionSheetOption:
		return o.Preview
	default:
		return PreviewNone
	}
}

// Select runs the action's effect. A nil effect is a no-op.
func (o ActionOption) Select() {
	if o.OnSelect != nil {
		o.OnSelect()
	}
}
