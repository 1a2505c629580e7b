// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"testing"

	"github.com/albertocavalcante/commgen/model"
)

// mustComm parses the given documents into a Comm. Empty documents are
// left nil.
func mustComm(t *testing.T, name, backend, frontend string) *model.Comm {
	t.Helper()
	c := &model.Comm{Name: name}
	if backend != "" {
		ct, err := model.Parse([]byte(backend), model.Backend, name+"-backend-openrpc.json")
		if err != nil {
			t.Fatalf("Parse(backend) error = %v", err)
		}
		c.Backend = ct
	}
	if frontend != "" {
		ct, err := model.Parse([]byte(frontend), model.Frontend, name+"-frontend-openrpc.json")
		if err != nil {
			t.Fatalf("Parse(frontend) error = %v", err)
		}
		c.Frontend = ct
	}
	return c
}

const pingBackend = `{
	"openrpc": "1.3.0",
	"info": {"title": "Ping Backend", "version": "1.0.0"},
	"methods": [
		{
			"name": "do_ping",
			"summary": "Ping the backend",
			"params": [
				{"name": "value", "description": "The value to echo", "required": true, "schema": {"type": "string"}}
			],
			"result": {
				"schema": {
					"type": "object",
					"name": "ping_reply",
					"description": "The reply to a ping",
					"required": ["message"],
					"properties": {
						"message": {"type": "string", "description": "The echoed message"}
					}
				}
			}
		}
	]
}`

const modeBackend = `{
	"openrpc": "1.3.0",
	"info": {"title": "Mode Backend", "version": "1.0.0"},
	"methods": [
		{
			"name": "set_mode",
			"summary": "Set the mode",
			"params": [
				{"name": "mode", "description": "The new mode", "required": true, "schema": {"type": "string", "enum": ["a", "b"]}}
			]
		}
	]
}`
