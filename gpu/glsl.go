// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"regexp"
	"slices"
	"strconv"
)

// ShaderInput is a vertex shader input declared with an explicit
// location, as in `layout (location = 0) in vec3 aPos;`.
type ShaderInput struct {
	Name       string
	Location   int
	Components int
}

var (
	glslComments = regexp.MustCompile(`(?s)//[^\n]*|/\*.*?\*/`)
	glslInput    = regexp.MustCompile(`layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*in\s+(float|vec2|vec3|vec4)\s+(\w+)\s*;`)
	glslUniform  = regexp.MustCompile(`uniform\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)
)

var glslComponents = map[string]int{"float": 1, "vec2": 2, "vec3": 3, "vec4": 4}

// ParseShaderInputs returns the explicitly located float inputs
// declared in GLSL vertex shader source, sorted by location.
func ParseShaderInputs(src string) []ShaderInput {
	src = glslComments.ReplaceAllString(src, "")
	var ins []ShaderInput
	for _, m := range glslInput.FindAllStringSubmatch(src, -1) {
		loc, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		ins = append(ins, ShaderInput{Name: m[3], Location: loc, Components: glslComponents[m[2]]})
	}
	slices.SortFunc(ins, func(a, b ShaderInput) int { return a.Location - b.Location })
	return ins
}

// ParseUniforms returns the names of the uniforms declared in
// GLSL source, in declaration order without duplicates.
func ParseUniforms(src string) []string {
	src = glslComments.ReplaceAllString(src, "")
	var names []string
	for _, m := range glslUniform.FindAllStringSubmatch(src, -1) {
		if !slices.Contains(names, m[1]) {
			names = append(names, m[1])
		}
	}
	return names
}
