package cli

import (
	"errors"

	"apptrack/internal/format"
	"apptrack/internal/model"

	"github.com/spf13/cobra"
)

func newTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Tag commands",
	}

	cmd.AddCommand(newTagsListCmd(app))
	cmd.AddCommand(newTagsAddCmd(app))
	cmd.AddCommand(newTagsUpdateCmd(app))
	cmd.AddCommand(newTagsDeleteCmd(app))

	return cmd
}

func newTagsListCmd(app *App) *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags sorted by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if typ == "" {
				return writeOut(cmd, app, format.Envelope{
					Data: append(t.Tags(model.TagTypeSchool), t.Tags(model.TagTypeEssay)...),
				})
			}
			tt, err := model.ParseTagType(typ)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: t.Tags(tt)})
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "Only tags of this type (school|essay)")
	return cmd
}

func newTagsAddCmd(app *App) *cobra.Command {
	var name, color, typ string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			tt, err := model.ParseTagType(typ)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := model.ParseTagColor(color)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			tag, err := t.AddTag(name, c, tt)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: tag})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Tag name")
	cmd.Flags().StringVar(&color, "color", "blue", "Palette color")
	cmd.Flags().StringVar(&typ, "type", "", "Tag type (school|essay)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newTagsUpdateCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "update <tag-id>",
		Short: "Rename or recolor a tag (its type is fixed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("color") {
				return writeErr(cmd, errNothingToDo)
			}
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			cur, ok := t.TagsByID()[args[0]]
			if !ok {
				return writeErr(cmd, errNotFound("tag", args[0]))
			}
			if cmd.Flags().Changed("name") {
				cur.Name = name
			}
			if cmd.Flags().Changed("color") {
				c, err := model.ParseTagColor(color)
				if err != nil {
					return writeErr(cmd, err)
				}
				cur.Color = c
			}
			changed, err := t.UpdateTag(cur.ID, cur.Name, cur.Color)
			if err != nil {
				return writeErr(cmd, err)
			}
			got := t.TagsByID()[cur.ID]
			return writeOut(cmd, app, format.Envelope{
				Data: got,
				Meta: map[string]any{"changed": changed},
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New palette color")
	return cmd
}

func newTagsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <tag-id>",
		Short: "Delete a tag and remove it from every application and essay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, errors.New("deleting a tag removes it everywhere; pass --yes to confirm"))
			}
			t, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			changed, err := t.DeleteTag(args[0])
			if err := requireChanged(changed, err, "tag", args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{"id": args[0], "deleted": true}})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the cascading delete")
	return cmd
}
