// Package main provides the entry point of n2identity, the identity directory of the N2 platform.
// The command line manages users and roles stored through gorm, verifies credentials and
// issues signed web tokens carrying the user's roles.
package main
