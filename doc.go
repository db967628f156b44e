// Package main provides the entry point for the agency back-office service.
// It runs a Fiber based JSON API used by the admin dashboard to manage platform
// settings, CMS content, campaigns, influencers, brands and payments. Data is
// persisted with gorm and the process is configured through etc/main.toml.
package main
