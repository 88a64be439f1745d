package sqlitequery

import (
	"fmt"
	"io"
	"os"

	"github.com/jasonish/idsrule/config"
	"github.com/jasonish/idsrule/log"
	"github.com/jasonish/idsrule/sqlite"
	"github.com/spf13/pflag"
)

// Query writes the stored rules with the given classtype to w, one per
// line, returning the number written.
func Query(store *sqlite.RuleStore, classtype string, w io.Writer) (int, error) {
	ids, err := store.FindByClasstype(classtype)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		rule, err := store.FindBySid(id.Gid, id.Sid)
		if err != nil {
			return 0, err
		}
		if _, err := fmt.Fprintln(w, rule.String()); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}

func Main(args []string) {

	var configFilename string
	var classtype string
	var verbose bool

	flagset := pflag.NewFlagSet("sqlitequery", pflag.ExitOnError)
	flagset.StringVarP(&configFilename, "config", "c", "", "Configuration filename")
	flagset.StringP("database-filename", "D", "idsrule.sqlite", "Database filename")
	flagset.StringVar(&classtype, "classtype", "", "Classtype to list rules for")
	flagset.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	flagset.Parse(args)

	if verbose {
		log.SetLevel(log.DEBUG)
	}

	if classtype == "" {
		log.Fatal("No classtype provided.")
	}

	conf, err := config.LoadConfig(configFilename, flagset)
	if err != nil {
		log.Fatal(err)
	}

	store, err := sqlite.NewRuleStore(conf.DatabaseFilename)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	count, err := Query(store, classtype, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	log.Debug("Found %d rules with classtype %s", count, classtype)
}
