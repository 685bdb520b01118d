package db

import (
	"consenc/cli"
	"consenc/config"
	"consenc/store"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/syndtr/goleveldb/leveldb"
)

var cmd = &cobra.Command{
	Use:   "store",
	Short: "Commands for persisting decoded maps in consenc's database.",
}

func AddCmd(parent *cobra.Command) {
	parent.AddCommand(cmd)
}

func withDB(c *cobra.Command, cb func(db *leveldb.DB, cfg *config.Config) error) error {
	homeDir := cli.GetHomeDir(c)
	if err := config.EnsureHomeDir(homeDir); err != nil {
		return errors.Wrap(err, "error ensuring home directory")
	}
	cfg, err := cli.LoadConfig(c)
	if err != nil {
		return err
	}
	db, err := store.Open(config.ExpandDBPath(homeDir))
	if err != nil {
		return err
	}
	defer db.Close()
	return cb(db, cfg)
}
