package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/parser"
	"github.com/manav03panchal/controleplus/internal/validate"
)

// formField is one record field exposed as a flag. bind registers the flag
// on a command and returns the function that copies its value into a record.
type formField[T any] struct {
	name string
	bind func(cmd *cobra.Command) func(rec *T) error
}

// form is the flag set of one record kind, shared by add and edit.
type form[T any] []formField[T]

// boundForm is a form registered on one command.
type boundForm[T any] struct {
	cmd     *cobra.Command
	names   []string
	setters []func(rec *T) error
}

func (f form[T]) bind(cmd *cobra.Command) *boundForm[T] {
	b := &boundForm[T]{cmd: cmd}
	for _, field := range f {
		b.names = append(b.names, field.name)
		b.setters = append(b.setters, field.bind(cmd))
	}
	return b
}

// apply copies every flag given on the command line into rec. Flags left
// out keep rec's current value, so edit only touches what was passed.
func (b *boundForm[T]) apply(rec *T) error {
	for i, name := range b.names {
		if !b.cmd.Flags().Changed(name) {
			continue
		}
		if err := b.setters[i](rec); err != nil {
			return err
		}
	}
	return nil
}

func textField[T any](name, usage string, get func(*T) *string) formField[T] {
	return formField[T]{name: name, bind: func(cmd *cobra.Command) func(*T) error {
		v := cmd.Flags().String(name, "", usage)
		return func(rec *T) error {
			*get(rec) = validate.SanitizeField(*v)
			return nil
		}
	}}
}

func noteField[T any](name, usage string, get func(*T) *string) formField[T] {
	return formField[T]{name: name, bind: func(cmd *cobra.Command) func(*T) error {
		v := cmd.Flags().String(name, "", usage)
		return func(rec *T) error {
			note := validate.SanitizeNote(*v)
			if err := validate.Note(note); err != nil {
				return err
			}
			*get(rec) = note
			return nil
		}
	}}
}

func emailField[T any](name string, get func(*T) *string) formField[T] {
	return formField[T]{name: name, bind: func(cmd *cobra.Command) func(*T) error {
		v := cmd.Flags().String(name, "", "Email address")
		return func(rec *T) error {
			email := validate.SanitizeField(*v)
			if err := validate.Email(email); err != nil {
				return err
			}
			*get(rec) = email
			return nil
		}
	}}
}

func linkField[T any](name, usage string, get func(*T) *string) formField[T] {
	return formField[T]{name: name, bind: func(cmd *cobra.Command) func(*T) error {
		v := cmd.Flags().String(name, "", usage)
		return func(rec *T) error {
			link := validate.SanitizeField(*v)
			if err := validate.WebURL(name, link); err != nil {
				return err
			}
			*get(rec) = link
			return nil
		}
	}}
}

func dateField[T any](name, usage string, get func(*T) *string) formField[T] {
	return formField[T]{name: name, bind: func(cmd *cobra.Command) func(*T) error {
		v := cmd.Flags().String(name, "", usage+" (YYYY-MM-DD, DD/MM/YYYY or 'next friday')")
		return func(rec *T) error {
			date, err := parseDate(name, *v)
			if err != nil {
				return err
			}
			*get(rec) = date
			return nil
		}
	}}
}

func choiceField[T any, E ~string](name, usage string, allowed []E, get func(*T) *E) formField[T] {
	return formField[T]{name: name, bind: func(cmd *cobra.Command) func(*T) error {
		v := cmd.Flags().String(name, "", usage)
		return func(rec *T) error {
			value := E(validate.SanitizeField(*v))
			if err := validate.OneOf(name, value, allowed); err != nil {
				return err
			}
			*get(rec) = value
			return nil
		}
	}}
}

func listField[T any](name, usage string, get func(*T) *[]string) formField[T] {
	return formField[T]{name: name, bind: func(cmd *cobra.Command) func(*T) error {
		v := cmd.Flags().StringSlice(name, nil, usage+" (comma separated, repeatable)")
		return func(rec *T) error {
			*get(rec) = parser.ParseLists(*v)
			return nil
		}
	}}
}

func boolField[T any](name, usage string, get func(*T) *bool) formField[T] {
	return formField[T]{name: name, bind: func(cmd *cobra.Command) func(*T) error {
		v := cmd.Flags().Bool(name, false, usage)
		return func(rec *T) error {
			*get(rec) = *v
			return nil
		}
	}}
}

// address points at the postal address fields of a contact.
type address struct {
	Street, Number, Complement, Neighborhood, ZipCode *string
}

// addressFields are the postal address flags shared by contacts.
func addressFields[T any](get func(*T) address) form[T] {
	return form[T]{
		textField("street", "Street", func(r *T) *string { return get(r).Street }),
		textField("number", "Street number", func(r *T) *string { return get(r).Number }),
		textField("complement", "Address complement", func(r *T) *string { return get(r).Complement }),
		textField("neighborhood", "Neighborhood", func(r *T) *string { return get(r).Neighborhood }),
		textField("zip", "CEP", func(r *T) *string { return get(r).ZipCode }),
	}
}
