package main

import (
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/taigrr/dirdeploy/internal/config"
	"github.com/taigrr/dirdeploy/internal/pathfilter"
	"github.com/taigrr/dirdeploy/internal/types"
)

type (
	// DeployInput contains parameters shared by both deployment tools.
	DeployInput struct {
		From              string `json:"dfrom" jsonschema:"Directory to deploy from"`
		To                string `json:"dto" jsonschema:"Directory to deploy to"`
		CreateDestination bool   `json:"createDestination,omitempty" jsonschema:"Create dto (with parents) if it does not exist (default: false)"`
	}

	// DeployDirOutput contains the result of a full directory deployment.
	DeployDirOutput struct {
		Success bool   `json:"success"`
		From    string `json:"dfrom"`
		To      string `json:"dto"`
		Files   int    `json:"files"`
		Dirs    int    `json:"dirs"`
		Log     string `json:"log"`
	}

	// DeployShellOutput contains the result of an empty-subdirectory
	// deployment.
	DeployShellOutput struct {
		Success bool     `json:"success"`
		From    string   `json:"dfrom"`
		To      string   `json:"dto"`
		Created []string `json:"created"`
		Skipped []string `json:"skipped"`
		Log     string   `json:"log"`
	}
)

// toolServer backs the MCP tools. Deployments change the process working
// directory, so calls are serialized.
type toolServer struct {
	mu          sync.Mutex
	pathFilter  *pathfilter.PathFilter
	borderWidth int
}

func newToolServer(settings *config.Settings) *toolServer {
	ts := &toolServer{
		pathFilter:  pathfilter.New(nil),
		borderWidth: config.DefaultBorderWidth,
	}
	if settings != nil {
		ts.pathFilter = pathfilter.New(&types.IgnoreConfig{IgnoredPatterns: settings.Ignore})
		if settings.Border > 0 {
			ts.borderWidth = settings.Border
		}
	}
	return ts
}

func (ts *toolServer) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        types.NameFullCopy,
		Description: "Copy a directory and all of its contents into another directory. Existing files with the same path are overwritten; other files in dto are kept.",
	}, ts.handleDeployDir)

	mcp.AddTool(server, &mcp.Tool{
		Name:        types.NameEmptyShell,
		Description: "Create empty copies of the immediate subdirectories of dfrom inside dto. Version-control and cache directories are skipped; existing subdirectories are left alone.",
	}, ts.handleDeployShell)
}

func newServeCmd() *cobra.Command {
	var settingsPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the deployment operations as MCP tools over stdio",
		Long: `serve runs a Model Context Protocol server on stdin/stdout exposing
deploy_dir and deploy_empty_subdirs as tools. A missing destination is
only created when the call sets createDestination.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var settings *config.Settings
			if settingsPath != "" {
				var err error
				settings, err = config.LoadSettings(settingsPath)
				if err != nil {
					return err
				}
			}

			server := mcp.NewServer(&mcp.Implementation{
				Name:    "dirdeploy",
				Version: version,
			}, nil)
			newToolServer(settings).registerTools(server)

			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				return fmt.Errorf("error running server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&settingsPath, config.FlagConfig, "", "YAML settings file")
	return cmd
}
