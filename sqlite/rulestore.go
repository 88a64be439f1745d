/* Copyright (c) 2017 Jason Ish
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
	"github.com/jasonish/idsrule/rules"
	"github.com/jasonish/idsrule/ruleparser"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("rule not found")

// RuleStore keeps parsed rules in an SQLite database, keyed by gid and
// sid.
type RuleStore struct {
	db *SqliteService
}

// NewRuleStore opens, or creates, the database in filename and brings
// its schema up to date.
func NewRuleStore(filename string) (*RuleStore, error) {
	db, err := NewSqliteService(filename)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to migrate database")
	}
	return &RuleStore{db: db}, nil
}

func (s *RuleStore) Close() error {
	return s.db.Close()
}

func toNullString(value string, ok bool) sql.NullString {
	return sql.NullString{String: value, Valid: ok && value != ""}
}

func toNullInt64(value uint64, ok bool) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(value), Valid: ok}
}

// StoreRules inserts the rules, replacing any stored rule with the same
// gid and sid. Rules without a sid are skipped. The number of rules
// stored is returned.
func (s *RuleStore) StoreRules(parsed []*ruleparser.Rule) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, errors.Wrap(err, "failed to create transaction")
	}

	stmt, err := tx.Prepare(`insert or replace into rules
		(gid, sid, rev, enabled, action, header, msg, classtype, raw)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
	if err != nil {
		tx.Rollback()
		return 0, errors.Wrap(err, "failed to prepare statement")
	}
	defer stmt.Close()

	count := 0
	for _, rule := range parsed {
		if rule == nil {
			continue
		}
		id, ok := rules.RuleIdOf(rule)
		if !ok {
			log.Debug("Not storing rule without sid: %s", rule.Raw)
			continue
		}
		rev, revOk := rule.Rev()
		msg, msgOk := rule.Msg()
		classtype, classtypeOk := rule.Classtype()
		_, err := stmt.Exec(
			int64(id.Gid),
			int64(id.Sid),
			toNullInt64(rev, revOk),
			rule.Enabled,
			string(rule.Action),
			rule.Header,
			toNullString(msg, msgOk),
			toNullString(classtype, classtypeOk),
			rule.Raw)
		if err != nil {
			tx.Rollback()
			return 0, errors.Wrapf(err, "failed to store rule %d:%d",
				id.Gid, id.Sid)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "failed to commit transaction")
	}

	return count, nil
}

// FindBySid returns the stored rule, parsed back from its text.
func (s *RuleStore) FindBySid(gid uint64, sid uint64) (*ruleparser.Rule, error) {
	var enabled bool
	var raw string
	err := s.db.QueryRow(`select enabled, raw from rules where gid = $1 and sid = $2`,
		int64(gid), int64(sid)).Scan(&enabled, &raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rule, err := ruleparser.ParseRule(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse stored rule %d:%d", gid, sid)
	}
	if rule == nil {
		return nil, errors.Errorf("stored rule %d:%d is not a rule", gid, sid)
	}
	rule.Enabled = enabled

	return rule, nil
}

// FindByClasstype returns the IDs of all rules with the given classtype.
func (s *RuleStore) FindByClasstype(classtype string) ([]rules.RuleId, error) {
	rows, err := s.db.Query(`select gid, sid from rules where classtype = $1
		order by gid, sid`, classtype)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []rules.RuleId{}
	for rows.Next() {
		var gid, sid int64
		if err := rows.Scan(&gid, &sid); err != nil {
			return nil, err
		}
		ids = append(ids, rules.RuleId{Gid: uint64(gid), Sid: uint64(sid)})
	}
	return ids, rows.Err()
}

func (s *RuleStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow("select count(*) from rules").Scan(&count)
	return count, err
}
