// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"github.com/albertocavalcante/commgen/generator"
	"github.com/albertocavalcante/commgen/generators/python"
	"github.com/albertocavalcante/commgen/generators/rust"
	"github.com/albertocavalcante/commgen/generators/typescript"
)

func init() {
	generator.Register(typescript.NewGenerator())
	generator.Register(rust.NewGenerator())
	generator.Register(python.NewGenerator())
}
