package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// ContactPoint is a person reachable for a role.
type ContactPoint struct {
	Name      string
	Role      string
	Telephone string
}

// Organization returns a RealEstateAgent schema with its contact points.
func Organization(name, email, address string, contacts []ContactPoint) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "RealEstateAgent",
		"name":     name,
	}
	if email != "" {
		m["email"] = email
	}
	if address != "" {
		m["address"] = address
	}
	if len(contacts) > 0 {
		points := make([]map[string]any, 0, len(contacts))
		for _, c := range contacts {
			points = append(points, map[string]any{
				"@type":       "ContactPoint",
				"name":        c.Name,
				"contactType": c.Role,
				"telephone":   c.Telephone,
			})
		}
		m["contactPoint"] = points
	}
	return m
}
