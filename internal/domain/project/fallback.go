package project

import "time"

// FallbackProjects is the static project list served when the database is
// unreachable. Mirrors the seed content shown on the marketing site.
func FallbackProjects() []Project {
	now := time.Now().UTC()
	return []Project{
		{
			ID:         "1",
			BrandID:    "inneranimal-media",
			Title:      "WildFit DTC Website",
			Slug:       "wildfit",
			Summary:    "A high-performance storefront with modular sections and fast checkout. Built for speed, scale, and content velocity.",
			Category:   CategoryWeb,
			Tags:       []string{"web design", "ecommerce", "shopify", "conversion"},
			Published:  true,
			Featured:   true,
			OrderIndex: 1,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         "2",
			BrandID:    "meauxbility",
			Title:      "Nova Health Rebrand",
			Slug:       "nova-health",
			Summary:    "A new identity system, logo, and voice kit unified 12 sub-brands under one banner.",
			Category:   CategoryBranding,
			Tags:       []string{"branding", "identity", "guidelines", "logo"},
			Published:  true,
			Featured:   true,
			OrderIndex: 2,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:         "3",
			BrandID:    "iautodidact",
			Title:      "Rally App Launch",
			Slug:       "rally",
			Summary:    "Full-funnel launch with creative, landing pages, and analytics, scaling from 0 to 50k MAU in six months.",
			Category:   CategoryMarketing,
			Tags:       []string{"growth", "paid social", "funnel", "seo"},
			Published:  true,
			Featured:   true,
			OrderIndex: 3,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
}
