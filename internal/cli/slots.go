package cli

import (
	"interior-cli/internal/model"

	"github.com/spf13/cobra"
)

func newSlotsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List the file slots and their labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, model.SlotDefs())
		},
	}
}

func newViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view <project-id> <slot>",
		Short: "Open a slot's file in the system viewer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, ok := model.ParseSlot(args[1])
			if !ok {
				return writeErr(cmd, unknownSlotError{name: args[1]})
			}
			sess := app.newSession(cmd)
			if err := load(cmd, sess, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			// View reports its own failures on stderr.
			return sess.View(slot)
		},
	}
}

func newShareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "share <project-id> <slot>",
		Short: "Copy a slot's link to the clipboard",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, ok := model.ParseSlot(args[1])
			if !ok {
				return writeErr(cmd, unknownSlotError{name: args[1]})
			}
			sess := app.newSession(cmd)
			if err := load(cmd, sess, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.Share(slot); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]string{
				"slot": string(slot),
				"url":  sess.Record().SlotURL(slot),
			})
		},
	}
}
