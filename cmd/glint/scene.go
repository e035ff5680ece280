package main

import (
	"github.com/spf13/cobra"

	"github.com/taigrr/glint/pkg/scenefile"
)

func newSceneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scene [file]",
		Short: "Print a scene as TOML",
		Long: "Prints the built-in scene, or the given .toml/.gltf/.glb scene, as a TOML\n" +
			"description that can be edited and passed to view or bench.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			d, err := loadDescription(path)
			if err != nil {
				return err
			}
			return scenefile.Encode(cmd.OutOrStdout(), d)
		},
	}
}
