// Package config loads the docpr configuration file: the operator's GitHub
// username and the path of the local working copy, plus optional remote and
// repository overrides. A missing or incomplete file is recreated
// interactively.
package config
