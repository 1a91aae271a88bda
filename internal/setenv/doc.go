// Package setenv persists the variables of a plain .env file for future
// shell sessions.
//
// On Unix each variable is appended to ~/.zshrc (when $SHELL mentions zsh)
// or ~/.bashrc as export KEY="VALUE". On Windows each variable is stored
// with setx. Variables already running in the current shell are not
// changed.
package setenv
