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

package rules

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/jasonish/idsrule/eve"
	"github.com/jasonish/idsrule/log"
	"github.com/jasonish/idsrule/ruleparser"
	"golang.org/x/sync/errgroup"
)

// Rules without a gid option are generator 1.
const DefaultGid = 1

// RuleId identifies a rule by generator and signature ID.
type RuleId struct {
	Gid uint64
	Sid uint64
}

func RuleIdOf(rule *ruleparser.Rule) (RuleId, bool) {
	sid, ok := rule.Sid()
	if !ok {
		return RuleId{}, false
	}
	gid, ok := rule.Gid()
	if !ok {
		gid = DefaultGid
	}
	return RuleId{Gid: gid, Sid: sid}, true
}

type RuleMap struct {
	lock  sync.RWMutex
	rules map[RuleId]*ruleparser.Rule
}

func newRuleMap() *RuleMap {
	return &RuleMap{
		rules: make(map[RuleId]*ruleparser.Rule),
	}
}

// NewRuleMap loads the rules found at the given paths. A path may be a
// file, a directory in which case all files ending in .rules are
// loaded, or a glob pattern. Files that fail to load are logged and
// skipped.
func NewRuleMap(paths []string) *RuleMap {
	ruleMap := newRuleMap()

	filenames := expandPaths(paths)

	// Files are parsed concurrently, but added to the map in the order
	// given so the first of any duplicates wins.
	results := make([][]*ruleparser.Rule, len(filenames))
	group := errgroup.Group{}
	for i, filename := range filenames {
		i, filename := i, filename
		group.Go(func() error {
			rules, err := ruleparser.ParseFile(filename)
			if err != nil {
				log.Warning("Failed to load %s: %v", filename, err)
				return nil
			}
			results[i] = rules
			return nil
		})
	}
	group.Wait()

	for i, rules := range results {
		count := ruleMap.AddRules(rules)
		if rules != nil {
			log.Debug("Loaded %d rules from %s", count, filenames[i])
		}
	}

	log.Info("Loaded %d rules", ruleMap.Len())

	return ruleMap
}

func expandPaths(paths []string) []string {
	filenames := []string{}

	for _, path := range paths {

		fileInfo, err := os.Stat(path)
		if err != nil {
			// Load as glob.
			matches, err := filepath.Glob(path)
			if err != nil || len(matches) == 0 {
				log.Warning("No matches for %s", path)
				continue
			}
			filenames = append(filenames, matches...)
		} else if fileInfo.IsDir() {
			infos, err := ioutil.ReadDir(path)
			if err != nil {
				log.Warning("Failed to read %s: %v", fileInfo.Name(), err)
				continue
			}
			for _, info := range infos {
				if info.IsDir() || !strings.HasSuffix(info.Name(), ".rules") {
					continue
				}
				filenames = append(filenames, filepath.Join(path, info.Name()))
			}
		} else {
			filenames = append(filenames, path)
		}

	}

	return filenames
}

// AddRules adds rules to the map, returning the number added. Rules
// without a sid, or with the ID of a rule already in the map, are not
// added.
func (r *RuleMap) AddRules(rules []*ruleparser.Rule) int {
	r.lock.Lock()
	defer r.lock.Unlock()

	count := 0
	for _, rule := range rules {
		id, ok := RuleIdOf(rule)
		if !ok {
			log.Warning("Ignoring rule without sid: %s", rule.Raw)
			continue
		}
		if _, ok := r.rules[id]; ok {
			log.Warning("A rule with ID %d:%d already exists.", id.Gid, id.Sid)
			continue
		}
		r.rules[id] = rule
		count++
	}
	return count
}

func (r *RuleMap) Len() int {
	if r == nil {
		return 0
	}
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.rules)
}

func (r *RuleMap) Find(gid uint64, sid uint64) *ruleparser.Rule {
	if r == nil {
		return nil
	}
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.rules[RuleId{Gid: gid, Sid: sid}]
}

func (r *RuleMap) FindById(id uint64) *ruleparser.Rule {
	return r.Find(DefaultGid, id)
}

// Rules returns all rules ordered by gid then sid.
func (r *RuleMap) Rules() []*ruleparser.Rule {
	if r == nil {
		return nil
	}
	r.lock.RLock()
	ids := make([]RuleId, 0, len(r.rules))
	for id := range r.rules {
		ids = append(ids, id)
	}
	r.lock.RUnlock()

	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Gid != ids[j].Gid {
			return ids[i].Gid < ids[j].Gid
		}
		return ids[i].Sid < ids[j].Sid
	})

	rules := make([]*ruleparser.Rule, 0, len(ids))
	for _, id := range ids {
		if rule := r.Find(id.Gid, id.Sid); rule != nil {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Filter adds the text of the rule that generated an alert to the event.
func (r *RuleMap) Filter(event eve.EveEvent) {
	if event.EventType() != "alert" {
		return
	}
	sid, ok := event.GetAlertSignatureId()
	if ok {
		rule := r.Find(event.GetAlertGeneratorId(), sid)
		if rule != nil {
			event["rule"] = rule.String()
		}
	}
}
