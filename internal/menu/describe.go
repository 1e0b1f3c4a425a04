package menu

import "fmt"

// Entry is a closure-free description of an Option. Two menus built from the
// same snapshot describe identically.
type Entry struct {
	Kind       Kind    `json:"kind" yaml:"kind"`
	ID         string  `json:"id,omitempty" yaml:"id,omitempty"`
	Label      string  `json:"label" yaml:"label"`
	Target     ViewID  `json:"target,omitempty" yaml:"target,omitempty"`
	Preview    Preview `json:"preview,omitempty" yaml:"preview,omitempty"`
	IsSelected bool    `json:"is_selected,omitempty" yaml:"is_selected,omitempty"`
	Bound      bool    `json:"bound,omitempty" yaml:"bound,omitempty"`
	Actions    []Entry `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// Describe returns the structural description of options.
func Describe(options []Option) []Entry {
	entries := make([]Entry, 0, len(options))
	for _, o := range options {
		entries = append(entries, describeOne(o))
	}
	return entries
}

func describeOne(o Option) Entry {
	switch o := o.(type) {
	case ViewOption:
		return Entry{
			Kind:    KindView,
			ID:      string(o.ViewID),
			Label:   o.Label,
			Target:  o.Component,
			Preview: o.Preview,
		}
	case ActionSheetOption:
		actions := make([]Entry, 0, len(o.Actions))
		for _, a := range o.Actions {
			actions = append(actions, describeOne(a))
		}
		return Entry{
			Kind:    KindActionSheet,
			ID:      string(o.ID),
			Label:   o.Label,
			Preview: o.Preview,
			Actions: actions,
		}
	case ActionOption:
		return Entry{
			Kind:       KindAction,
			ID:         o.ID,
			Label:      o.Label,
			IsSelected: o.IsSelected,
			Bound:      o.OnSelect != nil,
		}
	default:
		panic(fmt.Sprintf("menu: unknown option type %T", o))
	}
}
