package cli

import "io"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	DB      string `long:"db" description:"Path to the catalog database (overrides config)"`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable debug logging on stderr"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// StatusCommand shows record counts, database size and top albums.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// SearchCommand runs a structured catalog query.
type SearchCommand struct {
	Quick string   `long:"quick" short:"q" description:"Quick search over every text field; replaces the field filters and sort"`
	Album []string `long:"album" description:"Album tag (repeatable, any of)"`

	Topic    string `long:"topic" description:"Topic expression, e.g. 'Bayram+[Ali,Veli]'"`
	Title    string `long:"title" description:"Title expression"`
	Location string `long:"location" description:"Location expression"`
	People   string `long:"people" description:"People expression"`
	Tags     string `long:"tags" description:"Tags expression"`

	LocationExact string `long:"location-exact" description:"Exact location"`
	Type          string `long:"type" description:"File type: image | video | audio"`
	Ext           string `long:"ext" description:"File extension (substring, case-insensitive)"`

	DateFrom  string `long:"date-from" description:"Date as DD.MM.YYYY, MM.YYYY or YYYY; exact match unless --date-range"`
	DateTo    string `long:"date-to" description:"Upper date bound, used with --date-range"`
	DateRange bool   `long:"date-range" description:"Treat --date-from/--date-to as an inclusive range"`

	CreatedFrom  string `long:"created-from" description:"Creation time (YYYY-MM-DD or RFC 3339); exact match unless --created-range"`
	CreatedTo    string `long:"created-to" description:"Upper creation time bound, used with --created-range"`
	CreatedRange bool   `long:"created-range" description:"Treat --created-from/--created-to as an inclusive range"`

	PeopleMin   int  `long:"people-min" description:"People count; exact match unless --people-range" default:"-1"`
	PeopleMax   int  `long:"people-max" description:"Maximum people count, used with --people-range" default:"-1"`
	PeopleRange bool `long:"people-range" description:"Treat --people-min/--people-max as an inclusive range"`

	Days     string `long:"days" description:"Comma-separated days of month"`
	Months   string `long:"months" description:"Comma-separated months (number or Turkish name)"`
	Years    string `long:"years" description:"Comma-separated years"`
	Weekdays string `long:"weekdays" description:"Comma-separated weekdays (Turkish name or 1-7, Monday first)"`

	Sort    string `long:"sort" description:"Primary sort: date | title | location | type | people | extension"`
	ThenBy  string `long:"then-by" description:"Secondary sort key"`
	Privacy int    `long:"privacy" description:"Privacy threshold (overrides config)" default:"-1"`
	Limit   int    `long:"limit" description:"Maximum results printed (0 for all)" default:"0"`

	globals *GlobalFlags
	version string
}

// ShowCommand prints one record.
type ShowCommand struct {
	ID string `long:"id" description:"Record ID (required)"`

	globals *GlobalFlags
	version string
}

// AddCommand adds one record to the catalog.
type AddCommand struct {
	Title    string   `long:"title" description:"Title"`
	Topic    string   `long:"topic" description:"Topic"`
	Location string   `long:"location" description:"Location"`
	People   string   `long:"people" description:"Comma-separated names"`
	Tags     string   `long:"tags" description:"Comma-separated tags"`
	Album    []string `long:"album" description:"Album tag (repeatable)"`
	Date     string   `long:"date" description:"DD.MM.YYYY, MM.YYYY or YYYY (required); precision follows the form"`
	File     string   `long:"file" description:"File name or extension; sets --ext and, if unset, --type"`
	Type     string   `long:"type" description:"File type: image | video | audio"`
	Privacy  int      `long:"privacy" description:"Privacy level" default:"0"`

	globals *GlobalFlags
	version string
}

// ReorderCommand sets the manual order of one date group.
type ReorderCommand struct {
	Date string   `long:"date" description:"Date of the group (required)"`
	IDs  []string `long:"id" description:"Record IDs in the new order (repeatable, every member once)"`

	globals *GlobalFlags
	version string
}

// DeleteCommand soft-deletes a record.
type DeleteCommand struct {
	ID string `long:"id" description:"Record ID (required)"`

	globals *GlobalFlags
	version string
}

// PruneCommand physically removes soft-deleted records.
type PruneCommand struct {
	DryRun bool `long:"dry-run" description:"Show what would be pruned without deleting"`

	globals *GlobalFlags
	version string
}

// PurgeCommand deletes ALL catalog data with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	stdin   io.Reader // injectable for testing; nil means os.Stdin
}
