package handler

import "strings"

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func indexOf(s, sub string) int { return strings.Index(s, sub) }

func countOf(s, sub string) int { return strings.Count(s, sub) }
