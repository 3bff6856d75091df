package utils

import (
	"strconv"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// Slugify lowercases the name and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// UniqueProductSlug appends -1, -2, ... to base until no other product uses
// the slug. excludeID skips the product being updated; pass 0 on create.
func UniqueProductSlug(db *gorm.DB, base string, excludeID uint) (string, error) {
	slug := base
	counter := 1
	for {
		query := db.Table("products").Where("slug = ?", slug)
		if excludeID != 0 {
			query = query.Where("id != ?", excludeID)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(counter)
		counter++
	}
}
