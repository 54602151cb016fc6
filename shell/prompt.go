package shell

import (
	"github.com/manifoldco/promptui"
)

// Prompter asks the user for a value.
type Prompter interface {
	Prompt(label, def string, mask bool) (string, error)
}

// PromptUI reads values with promptui, masking secrets.
type PromptUI struct{}

func (PromptUI) Prompt(label, def string, mask bool) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
	}
	if mask {
		prompt.Mask = '*'
		prompt.AllowEdit = false
	}
	return prompt.Run()
}
