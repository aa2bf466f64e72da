// Package entity defines the core business entities for the domain layer.
package entity

type defaultCategory struct {
	id, name, icon string
}

type defaultGroup struct {
	main   defaultCategory
	color  string
	leaves []defaultCategory
}

var defaultTaxonomy = []defaultGroup{
	{
		main:  defaultCategory{"housing", "Housing", "home"},
		color: "#2563EB",
		leaves: []defaultCategory{
			{"rent", "Rent", "key"},
			{"mortgage", "Mortgage", "building"},
			{"property_tax", "Property Taxes", "file-text"},
			{"utilities", "Utilities", "bolt"},
			{"home_maintenance", "Home Maintenance", "wrench"},
		},
	},
	{
		main:  defaultCategory{"transport", "Transportation", "car"},
		color: "#16A34A",
		leaves: []defaultCategory{
			{"car_payment", "Car Payments", "car"},
			{"fuel", "Fuel", "gas-pump"},
			{"public_transport", "Public Transport", "train"},
			{"car_maintenance", "Repairs & Maintenance", "wrench"},
			{"parking", "Parking Fees", "parking"},
		},
	},
	{
		main:  defaultCategory{"food", "Food", "utensils"},
		color: "#F97316",
		leaves: []defaultCategory{
			{"groceries", "Groceries", "shopping-cart"},
			{"dining", "Dining Out", "utensils"},
			{"coffee", "Coffee Shops/Snacks", "coffee"},
		},
	},
	{
		main:  defaultCategory{"health", "Health & Wellness", "heart"},
		color: "#EF4444",
		leaves: []defaultCategory{
			{"health_insurance", "Health Insurance", "shield"},
			{"doctor", "Doctor Visits", "medical"},
			{"medications", "Medications", "pill"},
			{"gym", "Gym Memberships", "dumbbell"},
		},
	},
	{
		main:  defaultCategory{"personal", "Personal Care", "scissors"},
		color: "#EC4899",
		leaves: []defaultCategory{
			{"grooming", "Haircuts/Grooming", "scissors"},
			{"cosmetics", "Skincare/Cosmetics", "sparkles"},
		},
	},
	{
		main:  defaultCategory{"entertainment", "Entertainment", "film"},
		color: "#A855F7",
		leaves: []defaultCategory{
			{"streaming", "Streaming Services", "tv"},
			{"events", "Movies/Concerts", "ticket"},
			{"sports", "Sports Events", "trophy"},
		},
	},
	{
		main:  defaultCategory{"travel", "Travel", "plane"},
		color: "#06B6D4",
		leaves: []defaultCategory{
			{"flights", "Flights", "plane"},
			{"hotels", "Accommodation", "bed"},
			{"travel_food", "Travel Meals", "utensils"},
		},
	},
	{
		main:  defaultCategory{"subscriptions", "Subscriptions", "repeat"},
		color: "#6366F1",
		leaves: []defaultCategory{
			{"software", "Software Tools", "laptop"},
			{"professional", "Professional Fees", "briefcase"},
		},
	},
	{
		main:  defaultCategory{"education", "Childcare & Education", "graduation-cap"},
		color: "#EAB308",
		leaves: []defaultCategory{
			{"school_fees", "School Fees", "graduation-cap"},
			{"school_supplies", "School Supplies", "book"},
			{"babysitting", "Babysitting", "users"},
		},
	},
	{
		main:  defaultCategory{"pets", "Pets", "paw"},
		color: "#F59E0B",
		leaves: []defaultCategory{
			{"pet_supplies", "Pet Food & Supplies", "shopping-bag"},
			{"vet", "Vet Visits", "medical"},
		},
	},
	{
		main:  defaultCategory{"savings", "Savings & Investments", "piggy-bank"},
		color: "#10B981",
		leaves: []defaultCategory{
			{"emergency", "Emergency Fund", "shield"},
			{"investments", "Investments", "chart-line"},
		},
	},
	{
		main:  defaultCategory{"debt", "Debt Repayment", "credit-card"},
		color: "#F43F5E",
		leaves: []defaultCategory{
			{"credit_card", "Credit Card Payments", "credit-card"},
			{"loans", "Loan Payments", "bank"},
		},
	},
	{
		main:  defaultCategory{"gifts", "Gifts & Donations", "gift"},
		color: "#F87171",
		leaves: []defaultCategory{
			{"gift_giving", "Gifts", "gift"},
			{"charity", "Charity", "heart"},
		},
	},
	{
		main:  defaultCategory{"work", "Work Expenses", "briefcase"},
		color: "#4B5563",
		leaves: []defaultCategory{
			{"office_supplies", "Office Supplies", "pencil"},
			{"equipment", "Work Equipment", "monitor"},
		},
	},
	{
		main:  defaultCategory{"clothing", "Clothing", "shirt"},
		color: "#8B5CF6",
		leaves: []defaultCategory{
			{"work_clothes", "Work Clothes", "shirt"},
			{"dry_cleaning", "Dry Cleaning", "shirt"},
		},
	},
}

// DefaultCategories returns a fresh copy of the built-in taxonomy, mains before their leaves.
func DefaultCategories() []*Category {
	categories := make([]*Category, 0, 64)
	for _, group := range defaultTaxonomy {
		categories = append(categories, &Category{
			ID:    group.main.id,
			Name:  group.main.name,
			Icon:  group.main.icon,
			Color: group.color,
		})
		for _, leaf := range group.leaves {
			parentID := group.main.id
			categories = append(categories, &Category{
				ID:       leaf.id,
				Name:     leaf.name,
				Icon:     leaf.icon,
				Color:    group.color,
				ParentID: &parentID,
			})
		}
	}
	return categories
}

// BuildCategoryTree groups leaves under their main category, keeping input order.
// Leaves whose parent is missing are returned as roots without children.
func BuildCategoryTree(categories []*Category) []*CategoryNode {
	nodes := make([]*CategoryNode, 0)
	byID := make(map[string]*CategoryNode)

	for _, c := range categories {
		if c.IsMain() {
			node := &CategoryNode{Category: c}
			byID[c.ID] = node
			nodes = append(nodes, node)
		}
	}

	for _, c := range categories {
		if c.IsMain() {
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Children = append(parent.Children, c)
			continue
		}
		nodes = append(nodes, &CategoryNode{Category: c})
	}

	return nodes
}
