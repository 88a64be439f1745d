/* Copyright (c) 2016 Jason Ish
 * All rights reserved.
 *
 * Redistribution and use in source and binary forms, with or without
 * modification, are permitted provided that the following conditions
 * are met:
 *
 * 1. Redistributions of source code must retain the above copyright
 *    notice, this list of conditions and the following disclaimer.
 * 2. Redistributions in binary form must reproduce the above copyright
 *    notice, this list of conditions and the following disclaimer in the
 *    documentation and/or other materials provided with the distribution.
 *
 * THIS SOFTWARE IS PROVIDED ``AS IS'' AND ANY EXPRESS OR IMPLIED
 * WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
 * DISCLAIMED. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY DIRECT,
 * INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES
 * (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
 * SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION)
 * HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT,
 * STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING
 * IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
 * POSSIBILITY OF SUCH DAMAGE.
 */

package sqlite

import (
	"database/sql"

	"github.com/jasonish/idsrule/log"
	"github.com/pkg/errors"
)

// Schema versions, applied in order. The index is the version.
var migrations = []string{
	`create table schema (
		version integer not null primary key,
		timestamp text not null
	);

	create table rules (
		gid integer not null,
		sid integer not null,
		rev integer,
		enabled integer not null,
		action text not null,
		header text not null,
		msg text,
		classtype text,
		raw text not null,
		primary key (gid, sid)
	);`,

	`create index rules_classtype_index on rules (classtype);`,
}

type Migrator struct {
	db *SqliteService
}

func NewMigrator(db *SqliteService) *Migrator {
	return &Migrator{
		db: db,
	}
}

func (m *Migrator) Migrate() error {

	var currentVersion int
	nextVersion := 0

	rows, err := m.db.Query("select max(version) from schema")
	if err == nil {
		if rows.Next() {
			if err := rows.Scan(&currentVersion); err != nil {
				rows.Close()
				return err
			}
			nextVersion = currentVersion + 1
		}
		rows.Close()
		log.Debug("Current database schema version: %d", currentVersion)
	} else {
		log.Debug("Initializing database.")
	}

	for ; nextVersion < len(migrations); nextVersion++ {

		log.Info("Updating database to version %d.", nextVersion)

		tx, err := m.db.Begin()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(migrations[nextVersion]); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "failed to apply schema version %d",
				nextVersion)
		}

		if err := m.setVersion(tx, nextVersion); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

func (m *Migrator) setVersion(tx *sql.Tx, version int) error {
	_, err := tx.Exec(`insert into schema (version, timestamp)
	                     values ($1, datetime('now'))`, version)
	return err
}
