package service

import "github.com/noah-isme/isp-backoffice-api/internal/table"

// CustomerTable is the customer list layout.
var CustomerTable = table.Definition{
	Columns: []table.Column{
		{Key: "name", Label: "Name", Sortable: true},
		{Key: "email", Label: "Email", Sortable: true},
		{Key: "phone", Label: "Phone"},
		{Key: "location.city", Label: "City", Sortable: true},
		{Key: "bundleNames", Label: "Bundles"},
		{Key: "status", Label: "Status", Sortable: true},
		{Key: "createdAt", Label: "Created", Sortable: true},
	},
	Facets: []table.Facet{
		{Type: "status", Label: "Status", Field: "status"},
		{Type: "city", Label: "City", Field: "location.city"},
		{Type: "bundle", Label: "Bundle", Field: "bundleNames", Membership: true},
	},
}

// BundleTable is the bundle list layout.
var BundleTable = table.Definition{
	Columns: []table.Column{
		{Key: "name", Label: "Name", Sortable: true},
		{Key: "description", Label: "Description"},
		{Key: "price", Label: "Price", Sortable: true},
		{Key: "speedMbps", Label: "Speed (Mbps)", Sortable: true},
		{Key: "subscribers", Label: "Subscribers", Sortable: true},
		{Key: "status", Label: "Status", Sortable: true},
	},
	Facets: []table.Facet{
		{Type: "status", Label: "Status", Field: "status"},
	},
}

// PaymentTable is the payment list layout.
var PaymentTable = table.Definition{
	Columns: []table.Column{
		{Key: "customerName", Label: "Customer", Sortable: true},
		{Key: "amount", Label: "Amount", Sortable: true},
		{Key: "method", Label: "Method", Sortable: true},
		{Key: "status", Label: "Status", Sortable: true},
		{Key: "reference", Label: "Reference"},
		{Key: "paidAt", Label: "Paid at", Sortable: true},
		{Key: "createdAt", Label: "Created", Sortable: true},
	},
	Facets: []table.Facet{
		{Type: "status", Label: "Status", Field: "status"},
		{Type: "method", Label: "Method", Field: "method"},
	},
}
