package suggestions

import "github.com/nephisha/next24-planner-api/internal/domain"

// Catalog maps a destination to its curated suggestions. In the current
// scope this is static content; a remote suggestion source would implement
// the same lookup.
type Catalog map[string][]domain.Activity

func rating(v float64) *float64 { return &v }

// DefaultCatalog returns the built-in suggestion content.
func DefaultCatalog() Catalog {
	return Catalog{
		"Paris, France": {
			{
				ID:          "eiffel-tower",
				Name:        "Eiffel Tower",
				Description: "Iconic iron lattice tower and symbol of Paris with breathtaking city views",
				Location: domain.Location{
					Latitude:  48.8584,
					Longitude: 2.2945,
					Address:   "Champ de Mars, 5 Avenue Anatole France, 75007 Paris",
				},
				DurationMinutes: 120,
				Category:        domain.CategoryAttraction,
				Rating:          rating(4.6),
				Price:           "€29",
				OpeningHours:    "9:30 AM - 11:45 PM",
			},
			{
				ID:          "louvre-museum",
				Name:        "Louvre Museum",
				Description: "World's largest art museum, home to the Mona Lisa and countless masterpieces",
				Location: domain.Location{
					Latitude:  48.8606,
					Longitude: 2.3376,
					Address:   "Rue de Rivoli, 75001 Paris",
				},
				DurationMinutes: 180,
				Category:        domain.CategoryAttraction,
				Rating:          rating(4.7),
				Price:           "€17",
				OpeningHours:    "9:00 AM - 6:00 PM",
			},
			{
				ID:          "seine-cruise",
				Name:        "Seine River Cruise",
				Description: "Romantic boat cruise along the Seine with views of Paris landmarks",
				Location: domain.Location{
					Latitude:  48.8566,
					Longitude: 2.3522,
					Address:   "Port de la Bourdonnais, 75007 Paris",
				},
				DurationMinutes: 60,
				Category:        domain.CategoryActivity,
				Rating:          rating(4.4),
				Price:           "€15",
				OpeningHours:    "10:00 AM - 10:00 PM",
			},
			{
				ID:          "cafe-de-flore",
				Name:        "Café de Flore",
				Description: "Historic Parisian café famous for its literary clientele and classic atmosphere",
				Location: domain.Location{
					Latitude:  48.8542,
					Longitude: 2.3320,
					Address:   "172 Boulevard Saint-Germain, 75006 Paris",
				},
				DurationMinutes: 90,
				Category:        domain.CategoryRestaurant,
				Rating:          rating(4.2),
				Price:           "€25",
				OpeningHours:    "7:00 AM - 1:30 AM",
			},
			{
				ID:          "montmartre-walk",
				Name:        "Montmartre Walking Tour",
				Description: "Explore the bohemian hilltop district with its artists, cafés, and Sacré-Cœur",
				Location: domain.Location{
					Latitude:  48.8867,
					Longitude: 2.3431,
					Address:   "Place du Tertre, 75018 Paris",
				},
				DurationMinutes: 150,
				Category:        domain.CategoryActivity,
				Rating:          rating(4.5),
				Price:           "Free",
				OpeningHours:    "All day",
			},
			{
				ID:          "le-comptoir-relais",
				Name:        "Le Comptoir du Relais",
				Description: "Authentic French bistro serving traditional cuisine in a cozy setting",
				Location: domain.Location{
					Latitude:  48.8529,
					Longitude: 2.3364,
					Address:   "9 Carrefour de l'Odéon, 75006 Paris",
				},
				DurationMinutes: 120,
				Category:        domain.CategoryRestaurant,
				Rating:          rating(4.3),
				Price:           "€45",
				OpeningHours:    "12:00 PM - 11:00 PM",
			},
		},
	}
}
