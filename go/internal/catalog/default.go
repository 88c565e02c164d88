package catalog

var defaultJurisdictions = []Jurisdiction{
	{Slug: "tennessee", DrawTime: "10:28:00 AM"},
	{Slug: "texas", DrawTime: "11:00:00 AM"},
	{Slug: "maryland", DrawTime: "12:28:00 PM"},
	{Slug: "ohio", DrawTime: "12:29:00 PM"},
	{Slug: "georgia", DrawTime: "12:29:00 PM"},
	{Slug: "new-jersey", DrawTime: "12:59:00 PM"},
	{Slug: "south-carolina", DrawTime: "12:59:00 PM"},
	{Slug: "michigan", DrawTime: "12:59:00 PM"},
	{Slug: "maine", DrawTime: "1:10:00 PM"},
	{Slug: "new-hampshire", DrawTime: "1:10:00 PM"},
	{Slug: "iowa", DrawTime: "1:20:00 PM"},
	{Slug: "rhode-island", DrawTime: "1:30:00 PM"},
	{Slug: "kentucky", DrawTime: "1:20:00 PM"},
	{Slug: "indiana", DrawTime: "1:20:00 PM"},
	{Slug: "florida", DrawTime: "1:30:00 PM"},
	{Slug: "pennsylvania", DrawTime: "1:35:00 PM"},
	{Slug: "tennessee-2", DisplayName: "TENNESSEE 2", DrawTime: "1:28:00 PM"},
	{Slug: "texas-2", DisplayName: "TEXAS 2", DrawTime: "1:27:00 PM"},
	{Slug: "illinois", DrawTime: "1:40:00 PM"},
	{Slug: "missouri", DrawTime: "1:45:00 PM"},
	{Slug: "district-of-columbia", DisplayName: "WASHINGTON DC", DrawTime: "1:50:00 PM"},
	{Slug: "massachusetts", DrawTime: "2:00:00 PM"},
	{Slug: "arkansas", DrawTime: "1:59:00 PM"},
	{Slug: "virginia", DrawTime: "1:59:00 PM"},
	{Slug: "kansas", DrawTime: "2:10:00 PM"},
	{Slug: "delaware", DrawTime: "1:58:00 PM"},
	{Slug: "connecticut", DrawTime: "1:57:00 PM"},
	{Slug: "new-york", DrawTime: "2:30:00 PM"},
	{Slug: "wisconsin", DrawTime: "2:30:00 PM"},
	{Slug: "north-carolina", DrawTime: "3:00:00 PM"},
	{Slug: "new-mexico", DrawTime: "3:00:00 PM"},
	{Slug: "mississippi", DrawTime: "3:30:00 PM"},
	{Slug: "colorado", DrawTime: "3:30:00 PM"},
	{Slug: "oregon", DrawTime: "4:00:00 PM"},
	{Slug: "california", DrawTime: "4:00:00 PM"},
	{Slug: "idaho", DrawTime: "4:00:00 PM"},
}
