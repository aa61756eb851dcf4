package profile

// Tone directives per domain. The delivery tone is informal and promotional,
// the mechanic tone professional and technical, the pharmacy tone cautious
// and regulatory.
const (
	deliveryTone = "Reply in a light, friendly, informal tone. Use emoji where it fits " +
		"(e.g. 🍕😉) and keep the pace of a casual restaurant counter. Customers may pick " +
		"up to 2 flavors per pizza; every pizza is large and priced at the most expensive " +
		"flavor. ALWAYS state the price when asked about a specific product. If a flavor " +
		"is not on the menu, say so. Mention working hours when relevant; if an order " +
		"arrives outside working hours, explain the shop is closed and give the next " +
		"opening time. Payment is Pix, cash or card. Bring up the delivery fee and " +
		"minimum order when needed."

	mechanicTone = "Be professional, direct and helpful. Use accessible technical language " +
		"and focus on bookings, inspections, diagnostics and clear information. No jokes or " +
		"exaggeration. ALWAYS state service prices when asked, and explain that quoted " +
		"services cover labor only, with parts billed separately. Booking an appointment is " +
		"required, and final pricing is confirmed after the vehicle is inspected. If asked " +
		"about work outside automotive service, politely explain only motor vehicles are " +
		"serviced."

	pharmacyTone = "Be polite, empathetic and trustworthy. Give clear guidance on " +
		"controlled medication and prescription requirements. Use emoji sparingly " +
		"(e.g. 💊🙂). ALWAYS state prices when asked. When a customer names only a generic " +
		"medication (e.g. 'Dipirona'), ask for the dosage and form (tablet, drops) before " +
		"confirming. If a medication is controlled or needs a prescription, state clearly " +
		"that it can only be sold against a physical or digital prescription, as required " +
		"by regulation. If a product is not stocked, say so clearly and politely. Mention " +
		"home delivery when appropriate."
)

var deliveryProfile = Profile{
	Domain:       Delivery,
	WorkingHours: "Tuesday to Sunday, 18:00-23:30",
	Products: []CatalogEntry{
		{Name: "Margherita pizza", Price: "R$ 45.00", Available: true},
		{Name: "Pepperoni pizza", Price: "R$ 52.00", Available: true},
		{Name: "Four cheese pizza", Price: "R$ 55.00", Available: true},
		{Name: "Chicken and catupiry pizza", Price: "R$ 49.00", Available: true},
		{Name: "Shrimp pizza", Available: false, Note: "back next week"},
		{Name: "Soda 2L", Price: "R$ 12.00", Available: true},
		{Name: "Chocolate dessert pizza", Price: "R$ 38.00", Available: true},
	},
	Policies: Policies{
		PaymentMethods: []string{"Pix", "cash", "card"},
		DeliveryFee:    "R$ 8.00",
		MinimumOrder:   "R$ 30.00",
		DeliveryTime:   "40-60 minutes",
	},
	Tone: deliveryTone,
}

var mechanicProfile = Profile{
	Domain:       Mechanic,
	WorkingHours: "Monday to Friday, 08:00-18:00; Saturday, 08:00-12:00",
	Services: []CatalogEntry{
		{Name: "Oil change", Price: "R$ 120.00", Available: true, Duration: "40 min", Note: "labor only, oil billed separately"},
		{Name: "Full inspection", Price: "R$ 250.00", Available: true, Duration: "3 h"},
		{Name: "Brake service", Price: "R$ 180.00", Available: true, Duration: "2 h", Note: "pads billed separately"},
		{Name: "Wheel alignment and balancing", Price: "R$ 150.00", Available: true, Duration: "1 h"},
		{Name: "Air conditioning recharge", Available: false, Note: "equipment under maintenance"},
		{Name: "Engine diagnostics", Price: "R$ 90.00", Available: true, Duration: "1 h"},
	},
	Policies: Policies{
		PaymentMethods:      []string{"Pix", "cash", "card"},
		DiagnosticFee:       "R$ 90.00, waived if the repair is done with us",
		Warranty:            "90 days on labor",
		AppointmentRequired: true,
	},
	Tone: mechanicTone,
}

var pharmacyProfile = Profile{
	Domain:       Pharmacy,
	WorkingHours: "every day, 07:00-22:00",
	Products: []CatalogEntry{
		{Name: "Dipirona 500mg (20 tablets)", Price: "R$ 8.50", Available: true},
		{Name: "Paracetamol 750mg (20 tablets)", Price: "R$ 9.90", Available: true},
		{Name: "Amoxicillin 500mg (21 capsules)", Price: "R$ 32.00", Available: true, RequiresPrescription: true},
		{Name: "Clonazepam 2mg", Price: "R$ 18.00", Available: true, RequiresPrescription: true, Note: "controlled, retained prescription"},
		{Name: "Vitamin C 1g effervescent", Price: "R$ 22.00", Available: true},
		{Name: "Children's syrup", Available: false, Note: "awaiting restock"},
	},
	Services: []CatalogEntry{
		{Name: "Blood pressure check", Price: "R$ 5.00", Available: true, Duration: "10 min"},
		{Name: "Medication application", Price: "R$ 10.00", Available: true, Note: "with prescription"},
	},
	Policies: Policies{
		PaymentMethods: []string{"Pix", "cash", "card"},
		DeliveryFee:    "R$ 6.00 within the neighborhood",
		DeliveryTime:   "up to 45 minutes",
	},
	Tone: pharmacyTone,
}
