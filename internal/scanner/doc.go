// Package scanner finds .env files and decides which direction they go.
//
// Classification looks at the filename only. A plain file starts with
// ".env" and does not end in ".enc" or ".encrypted"; an encrypted file
// contains ".env" and ends in one of those suffixes. No name is both.
//
// File access goes through an afero.Fs so scans can run against an
// in-memory filesystem in tests.
package scanner
