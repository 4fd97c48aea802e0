// Package main is the devportfolio command. It runs the public web service
// (start), the store backend that persists the portfolio (backend) and the
// admin client that edits it through the web service (admin).
package main
