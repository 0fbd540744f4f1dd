package seed

import "github.com/shashank9666/qwipo-backend/internal/models"

// sampleAddress is an address linked to a sample customer by first name
type sampleAddress struct {
	CustomerName string
	models.Address
}

func email(s string) *string {
	return &s
}

// SampleCustomers are the customers inserted by Run
var SampleCustomers = []models.Customer{
	{FirstName: "John", LastName: "Doe", PhoneNumber: "9876543210", Email: email("john.doe@email.com")},
	{FirstName: "Alice", LastName: "Johnson", PhoneNumber: "8765432109", Email: email("alice.johnson@email.com")},
	{FirstName: "Bob", LastName: "Smith", PhoneNumber: "7654321098", Email: email("bob.smith@email.com")},
	{FirstName: "Emma", LastName: "Wilson", PhoneNumber: "6543210987", Email: email("emma.wilson@email.com")},
	{FirstName: "Michael", LastName: "Brown", PhoneNumber: "5432109876", Email: email("michael.brown@email.com")},
	{FirstName: "Sarah", LastName: "Davis", PhoneNumber: "4321098765", Email: email("sarah.davis@email.com")},
	{FirstName: "David", LastName: "Miller", PhoneNumber: "3210987654", Email: email("david.miller@email.com")},
	{FirstName: "Lisa", LastName: "Garcia", PhoneNumber: "2109876543", Email: email("lisa.garcia@email.com")},
	{FirstName: "James", LastName: "Rodriguez", PhoneNumber: "1098765432", Email: email("james.rodriguez@email.com")},
	{FirstName: "Anna", LastName: "Martinez", PhoneNumber: "0987654321", Email: email("anna.martinez@email.com")},
}

var sampleAddresses = []sampleAddress{
	{"John", models.Address{Street: "123 Main Street, Apartment 4B", City: "Mumbai", State: "MH", ZipCode: "400001", AddressType: "home", IsPrimary: true}},
	{"John", models.Address{Street: "456 Business Center, Office 201", City: "Mumbai", State: "MH", ZipCode: "400070", AddressType: "work"}},
	{"Alice", models.Address{Street: "789 Oak Avenue, House 12", City: "Delhi", State: "DL", ZipCode: "110001", AddressType: "home", IsPrimary: true}},
	{"Alice", models.Address{Street: "321 Corporate Plaza, Floor 5", City: "Gurgaon", State: "HR", ZipCode: "122001", AddressType: "work"}},
	{"Bob", models.Address{Street: "555 Pine Road, Villa 8", City: "Bangalore", State: "KA", ZipCode: "560001", AddressType: "home", IsPrimary: true}},
	{"Emma", models.Address{Street: "777 Elm Street, Flat 3C", City: "Chennai", State: "TN", ZipCode: "600001", AddressType: "home", IsPrimary: true}},
	{"Emma", models.Address{Street: "888 IT Park, Building A, Unit 15", City: "Chennai", State: "TN", ZipCode: "600113", AddressType: "work"}},
	{"Michael", models.Address{Street: "999 Sector 15, Block B, House 25", City: "Noida", State: "UP", ZipCode: "201301", AddressType: "home", IsPrimary: true}},
	{"Sarah", models.Address{Street: "111 MG Road, Apartment 7A", City: "Pune", State: "MH", ZipCode: "411001", AddressType: "home", IsPrimary: true}},
	{"Sarah", models.Address{Street: "222 Hadapsar Industrial Area, Warehouse 10", City: "Pune", State: "MH", ZipCode: "411028", AddressType: "work"}},
	{"David", models.Address{Street: "333 Lake View, Tower 2, Flat 12B", City: "Hyderabad", State: "TG", ZipCode: "500001", AddressType: "home", IsPrimary: true}},
	{"Lisa", models.Address{Street: "444 Brigade Road, Shop 5", City: "Bangalore", State: "KA", ZipCode: "560025", AddressType: "work"}},
	{"James", models.Address{Street: "666 Connaught Place, Office 301", City: "Delhi", State: "DL", ZipCode: "110001", AddressType: "work"}},
	{"James", models.Address{Street: "777 Karol Bagh, Apartment 6D", City: "Delhi", State: "DL", ZipCode: "110005", AddressType: "home", IsPrimary: true}},
	{"Anna", models.Address{Street: "888 Marine Drive, Sea View Apartment 9A", City: "Mumbai", State: "MH", ZipCode: "400002", AddressType: "home", IsPrimary: true}},
}
