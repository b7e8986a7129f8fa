package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	domain "github.com/retrohunt/retro-hunter/pkg/types"
)

func foldersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Organize collection items into folders",
	}

	cmd.AddCommand(foldersListCmd())
	cmd.AddCommand(foldersCreateCmd())
	cmd.AddCommand(foldersUpdateCmd())
	cmd.AddCommand(foldersDeleteCmd())

	return cmd
}

func foldersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your folders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			user, err := currentUser(cmd, a)
			if err != nil {
				return err
			}

			folders, err := a.collection.ListFolders(cmd.Context(), user.ID)
			if err != nil {
				return err
			}

			if viper.GetString("output") == "json" {
				return outputJSON(folders)
			}
			return printFoldersTable(folders)
		},
	}
}

func foldersCreateCmd() *cobra.Command {
	var description, color string

	cmd := &cobra.Command{
		Use:     "create <name>",
		Short:   "Create a folder",
		Example: `  retro folders create "PS2 RPGs" --color "#aa33ff"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			user, err := currentUser(cmd, a)
			if err != nil {
				return err
			}

			created, err := a.collection.CreateFolder(cmd.Context(), domain.Folder{
				Name:        args[0],
				Description: description,
				Color:       color,
				UserID:      user.ID,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created folder %s (id %s)\n", created.Name, created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "folder description")
	cmd.Flags().StringVar(&color, "color", "", "display color, e.g. #aa33ff")

	return cmd
}

func foldersUpdateCmd() *cobra.Command {
	var name, description, color string

	cmd := &cobra.Command{
		Use:   "update <folder id>",
		Short: "Rename or recolor a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			user, err := currentUser(cmd, a)
			if err != nil {
				return err
			}

			folders, err := a.collection.ListFolders(cmd.Context(), user.ID)
			if err != nil {
				return err
			}

			for _, folder := range folders {
				if folder.ID != args[0] {
					continue
				}
				if cmd.Flags().Changed("name") {
					folder.Name = name
				}
				if cmd.Flags().Changed("description") {
					folder.Description = description
				}
				if cmd.Flags().Changed("color") {
					folder.Color = color
				}
				if err := a.collection.UpdateFolder(cmd.Context(), folder); err != nil {
					return err
				}
				fmt.Printf("Updated folder %s\n", folder.Name)
				return nil
			}
			return fmt.Errorf("folder %s not found", args[0])
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new folder name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&color, "color", "", "new display color")

	return cmd
}

func foldersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <folder id>",
		Short: "Delete a folder; its items stay in the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			user, err := currentUser(cmd, a)
			if err != nil {
				return err
			}

			if _, err := a.collection.ListFolders(cmd.Context(), user.ID); err != nil {
				return err
			}
			if err := a.collection.DeleteFolder(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Println("Folder deleted. Items were kept.")
			return nil
		},
	}
}
