package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/core/ports/driving"
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage data sources",
	Long: `Add, list, validate and remove data sources.

A source binds a connector type (redmine, gitlab) to an instance URL and a
credential. Credentials are stored separately from the source definition.

Examples:
  # Add a Redmine source
  tapestry source add redmine --name "Tracker" \
    -c base_url=https://redmine.example.com --token "abc123"

  # Add a GitLab source limited to two projects
  tapestry source add gitlab --name "Code" \
    -c instance_url=gitlab.example.com \
    -c project_identifiers=group/app,group/lib \
    --token "glpat-xxx"

  # Check stored credentials still work
  tapestry source validate <source-id>`,
}

var sourceAddCmd = &cobra.Command{
	Use:   "add [connector-type]",
	Short: "Add a new source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceAdd,
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sources",
	RunE:  runSourceList,
}

var sourceRemoveCmd = &cobra.Command{
	Use:   "remove [source-id]",
	Short: "Remove a source and its credentials",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceRemove,
}

var sourceValidateCmd = &cobra.Command{
	Use:   "validate [source-id]",
	Short: "Check that a source's credentials work",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceValidate,
}

var connectorCmd = &cobra.Command{
	Use:   "connector",
	Short: "Inspect available connector types",
}

var connectorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available connector types",
	RunE:  runConnectorList,
}

// Flags for source add.
var (
	sourceAddName       string
	sourceAddToken      string
	sourceAddAuthMethod string
	sourceAddConfig     []string
)

func init() {
	sourceAddCmd.Flags().StringVar(
		&sourceAddName, "name", "", "Human-readable name for the source")
	sourceAddCmd.Flags().StringVar(
		&sourceAddToken, "token", "", "API key or personal access token")
	sourceAddCmd.Flags().StringVar(
		&sourceAddAuthMethod, "auth-method", "", "Authentication method (apikey, pat, oauth)")
	sourceAddCmd.Flags().StringArrayVarP(
		&sourceAddConfig, "config", "c", nil, "Connector config as key=value (repeatable)")

	sourceCmd.AddCommand(sourceAddCmd)
	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceRemoveCmd)
	sourceCmd.AddCommand(sourceValidateCmd)
	connectorCmd.AddCommand(connectorListCmd)
	rootCmd.AddCommand(sourceCmd)
	rootCmd.AddCommand(connectorCmd)
}

func runSourceAdd(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	config, err := parseConfigFlags(sourceAddConfig)
	if err != nil {
		return err
	}

	req := driving.AddSourceRequest{
		Type:       args[0],
		Name:       sourceAddName,
		Config:     config,
		Credential: sourceAddToken,
		AuthMethod: domain.AuthMethod(sourceAddAuthMethod),
	}

	source, err := sourceService.Add(context.Background(), req)
	if err != nil {
		return fmt.Errorf("failed to add source: %w", err)
	}

	cmd.Printf("Added source: %s (%s)\n", source.Name, source.ID)
	if sourceAddToken == "" {
		cmd.Println("No credential stored; set one before syncing.")
	}
	return nil
}

// parseConfigFlags turns repeated key=value flags into a config map.
func parseConfigFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	config := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid config flag %q, expected key=value", pair)
		}
		config[key] = value
	}
	return config, nil
}

func runSourceList(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sources, err := sourceService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if len(sources) == 0 {
		cmd.Println("No configured sources.")
		cmd.Println("Add one with: tapestry source add <connector-type>")
		return nil
	}

	cmd.Println("Configured sources:")
	cmd.Println()
	for i := range sources {
		cmd.Printf("  %s\n", sources[i].ID)
		cmd.Printf("    Name: %s\n", sources[i].Name)
		cmd.Printf("    Type: %s\n", sources[i].Type)
		cmd.Printf("    Auth: %s\n", sources[i].AuthMethod)
		cmd.Printf("    Created: %s\n", sources[i].CreatedAt.Format(time.RFC3339))
		cmd.Println()
	}
	return nil
}

func runSourceRemove(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sourceID := args[0]
	if err := sourceService.Remove(context.Background(), sourceID); err != nil {
		return fmt.Errorf("failed to remove source: %w", err)
	}

	cmd.Printf("Removed source: %s\n", sourceID)
	return nil
}

func runSourceValidate(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sourceID := args[0]
	ok, err := sourceService.Validate(context.Background(), sourceID)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if !ok {
		return fmt.Errorf("source %s: credentials were rejected", sourceID)
	}
	cmd.Printf("Source %s: credentials are valid.\n", sourceID)
	return nil
}

func runConnectorList(cmd *cobra.Command, _ []string) error {
	if connectorRegistry == nil {
		return errors.New("connector registry not configured")
	}

	infos := connectorRegistry.List()
	if len(infos) == 0 {
		cmd.Println("No connectors available.")
		return nil
	}

	cmd.Println("Available connectors:")
	cmd.Println()
	for _, info := range infos {
		cmd.Printf("  %s - %s\n", info.ID, info.Name)
		cmd.Printf("    %s\n", info.Description)
		methods := make([]string, 0, len(info.AuthMethods))
		for _, m := range info.AuthMethods {
			methods = append(methods, string(m))
		}
		cmd.Printf("    Auth: %s\n", strings.Join(methods, ", "))
		cmd.Println("    Config:")
		for _, key := range info.ConfigKeys {
			required := ""
			if key.Required {
				required = " (required)"
			}
			cmd.Printf("      -c %s=...%s  %s\n", key.Key, required, key.Description)
		}
		cmd.Println()
	}
	return nil
}
