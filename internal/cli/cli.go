package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Status  *StatusCommand
	Search  *SearchCommand
	Show    *ShowCommand
	Add     *AddCommand
	Reorder *ReorderCommand
	Delete  *DeleteCommand
	Prune   *PruneCommand
	Purge   *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "mediacat"
	parser.LongDescription = "Local catalog of photos, videos and audio with structured search."

	cmds := &commands{
		Status:  &StatusCommand{globals: &globals, version: version},
		Search:  &SearchCommand{globals: &globals, version: version},
		Show:    &ShowCommand{globals: &globals, version: version},
		Add:     &AddCommand{globals: &globals, version: version},
		Reorder: &ReorderCommand{globals: &globals, version: version},
		Delete:  &DeleteCommand{globals: &globals, version: version},
		Prune:   &PruneCommand{globals: &globals, version: version},
		Purge:   &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("status", "Show catalog statistics", "Show record counts, date range, database size and top albums.", cmds.Status)
	parser.AddCommand("search", "Search the catalog", "Filter records by albums, field expressions, ranges and date components.", cmds.Search)
	parser.AddCommand("show", "Print one record", "Print every field of a single record.", cmds.Show)
	parser.AddCommand("add", "Add a record", "Add one record; its rank is the next free one on its date.", cmds.Add)
	parser.AddCommand("reorder", "Reorder a date group", "Set the manual order of all records sharing a date.", cmds.Reorder)
	parser.AddCommand("delete", "Delete a record", "Mark a record deleted. It is removed for good by prune.", cmds.Delete)
	parser.AddCommand("prune", "Remove deleted records", "Physically remove records marked deleted.", cmds.Prune)
	parser.AddCommand("purge", "Delete ALL catalog data", "Delete ALL catalog data. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the mediacat CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("mediacat %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
