package core

import "github.com/shopspring/decimal"

// SeedData returns the reference collections the service starts with when no database is configured.
// Every call builds fresh values so callers may mutate the result.
func SeedData() Seed {
	return Seed{
		Materials:         seedMaterials(),
		Suppliers:         seedSuppliers(),
		Inventory:         seedInventory(),
		Projects:          seedProjects(),
		ForecastEntries:   seedForecastEntries(),
		ProcurementOrders: seedProcurementOrders(),
	}
}

func qty(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func seedMaterials() []Material {
	return []Material{
		{ID: "MAT001", Name: "Steel Towers (Type A - 765kV)", Category: "Towers", Unit: "Units", CostPerUnit: qty(850000), LeadTimeDays: 45, ReorderLevel: qty(50), SafetyStock: qty(30), SupplierID: "SUP001"},
		{ID: "MAT002", Name: "Steel Towers (Type B - 400kV)", Category: "Towers", Unit: "Units", CostPerUnit: qty(520000), LeadTimeDays: 40, ReorderLevel: qty(40), SafetyStock: qty(25), SupplierID: "SUP001"},
		{ID: "MAT003", Name: "Steel Towers (Type C - 220kV)", Category: "Towers", Unit: "Units", CostPerUnit: qty(320000), LeadTimeDays: 35, ReorderLevel: qty(35), SafetyStock: qty(20), SupplierID: "SUP001"},
		{ID: "MAT004", Name: "Conductors - ACSR 400mm", Category: "Conductors", Unit: "Meters", CostPerUnit: qty(450), LeadTimeDays: 30, ReorderLevel: qty(5000), SafetyStock: qty(3000), SupplierID: "SUP002"},
		{ID: "MAT005", Name: "Conductors - ACSR 300mm", Category: "Conductors", Unit: "Meters", CostPerUnit: qty(350), LeadTimeDays: 30, ReorderLevel: qty(4000), SafetyStock: qty(2500), SupplierID: "SUP002"},
		{ID: "MAT006", Name: "Insulators - Disc Type", Category: "Insulators", Unit: "Units", CostPerUnit: qty(1200), LeadTimeDays: 25, ReorderLevel: qty(1000), SafetyStock: qty(600), SupplierID: "SUP003"},
		{ID: "MAT007", Name: "Insulators - Polymer Type", Category: "Insulators", Unit: "Units", CostPerUnit: qty(1500), LeadTimeDays: 28, ReorderLevel: qty(800), SafetyStock: qty(500), SupplierID: "SUP003"},
		{ID: "MAT008", Name: "Circuit Breakers 765kV", Category: "Equipment", Unit: "Units", CostPerUnit: qty(1250000), LeadTimeDays: 90, ReorderLevel: qty(5), SafetyStock: qty(3), SupplierID: "SUP004"},
		{ID: "MAT009", Name: "Circuit Breakers 400kV", Category: "Equipment", Unit: "Units", CostPerUnit: qty(750000), LeadTimeDays: 75, ReorderLevel: qty(8), SafetyStock: qty(5), SupplierID: "SUP004"},
		{ID: "MAT010", Name: "Transformers 765/400kV", Category: "Equipment", Unit: "Units", CostPerUnit: qty(8500000), LeadTimeDays: 120, ReorderLevel: qty(3), SafetyStock: qty(2), SupplierID: "SUP005"},
		{ID: "MAT011", Name: "Transformers 400/220kV", Category: "Equipment", Unit: "Units", CostPerUnit: qty(5200000), LeadTimeDays: 100, ReorderLevel: qty(4), SafetyStock: qty(2), SupplierID: "SUP005"},
		{ID: "MAT012", Name: "Foundation Bolts M36", Category: "Hardware", Unit: "Units", CostPerUnit: qty(850), LeadTimeDays: 15, ReorderLevel: qty(5000), SafetyStock: qty(3000), SupplierID: "SUP006"},
		{ID: "MAT013", Name: "Earth Wire ACSR", Category: "Conductors", Unit: "Meters", CostPerUnit: qty(180), LeadTimeDays: 25, ReorderLevel: qty(3000), SafetyStock: qty(2000), SupplierID: "SUP002"},
		{ID: "MAT014", Name: "Spacers & Dampers", Category: "Hardware", Unit: "Sets", CostPerUnit: qty(2500), LeadTimeDays: 20, ReorderLevel: qty(500), SafetyStock: qty(300), SupplierID: "SUP006"},
	}
}

func seedSuppliers() []Supplier {
	return []Supplier{
		{ID: "SUP001", Name: "Tata Steel", Category: "Towers", Rating: dec("4.8"), OnTimeDelivery: qty(95), QualityScore: qty(98), AvgLeadTime: 40, ContactEmail: "orders@tatasteel.com", ContactPhone: "+91-22-6665-8282"},
		{ID: "SUP002", Name: "Sterlite Power", Category: "Conductors", Rating: dec("4.7"), OnTimeDelivery: qty(92), QualityScore: qty(96), AvgLeadTime: 28, ContactEmail: "sales@sterlitepower.com", ContactPhone: "+91-20-3082-4500"},
		{ID: "SUP003", Name: "NGK Insulators", Category: "Insulators", Rating: dec("4.9"), OnTimeDelivery: qty(97), QualityScore: qty(99), AvgLeadTime: 26, ContactEmail: "india@ngk.com", ContactPhone: "+91-44-4299-6200"},
		{ID: "SUP004", Name: "Siemens India", Category: "Equipment", Rating: dec("4.8"), OnTimeDelivery: qty(94), QualityScore: qty(98), AvgLeadTime: 80, ContactEmail: "energy@siemens.com", ContactPhone: "+91-22-3967-7000"},
		{ID: "SUP005", Name: "ABB India", Category: "Equipment", Rating: dec("4.9"), OnTimeDelivery: qty(96), QualityScore: qty(99), AvgLeadTime: 110, ContactEmail: "transformers@abb.com", ContactPhone: "+91-80-2294-9150"},
		{ID: "SUP006", Name: "L&T Construction", Category: "Hardware", Rating: dec("4.6"), OnTimeDelivery: qty(90), QualityScore: qty(95), AvgLeadTime: 18, ContactEmail: "procurement@lntecc.com", ContactPhone: "+91-44-2254-6122"},
	}
}

func seedInventory() []InventoryRecord {
	return []InventoryRecord{
		{MaterialID: "MAT001", CurrentStock: qty(45), Reserved: qty(20), InTransit: qty(30), LastUpdated: "2025-11-27"},
		{MaterialID: "MAT002", CurrentStock: qty(52), Reserved: qty(15), InTransit: qty(0), LastUpdated: "2025-11-27"},
		{MaterialID: "MAT003", CurrentStock: qty(38), Reserved: qty(10), InTransit: qty(20), LastUpdated: "2025-11-26"},
		{MaterialID: "MAT004", CurrentStock: qty(12000), Reserved: qty(5000), InTransit: qty(8000), LastUpdated: "2025-11-27"},
		{MaterialID: "MAT005", CurrentStock: qty(8500), Reserved: qty(3000), InTransit: qty(0), LastUpdated: "2025-11-26"},
		{MaterialID: "MAT006", CurrentStock: qty(850), Reserved: qty(400), InTransit: qty(500), LastUpdated: "2025-11-27"},
		{MaterialID: "MAT007", CurrentStock: qty(920), Reserved: qty(300), InTransit: qty(0), LastUpdated: "2025-11-25"},
		{MaterialID: "MAT008", CurrentStock: qty(4), Reserved: qty(2), InTransit: qty(3), LastUpdated: "2025-11-27"},
		{MaterialID: "MAT009", CurrentStock: qty(11), Reserved: qty(3), InTransit: qty(0), LastUpdated: "2025-11-26"},
		{MaterialID: "MAT010", CurrentStock: qty(2), Reserved: qty(1), InTransit: qty(2), LastUpdated: "2025-11-27"},
		{MaterialID: "MAT011", CurrentStock: qty(5), Reserved: qty(2), InTransit: qty(0), LastUpdated: "2025-11-25"},
		{MaterialID: "MAT012", CurrentStock: qty(6200), Reserved: qty(2000), InTransit: qty(0), LastUpdated: "2025-11-26"},
		{MaterialID: "MAT013", CurrentStock: qty(4500), Reserved: qty(1500), InTransit: qty(2000), LastUpdated: "2025-11-27"},
		{MaterialID: "MAT014", CurrentStock: qty(580), Reserved: qty(150), InTransit: qty(0), LastUpdated: "2025-11-24"},
	}
}

func seedProjects() []Project {
	return []Project{
		{
			ID: "PRJ001", Name: "765kV Transmission Line - Mumbai-Pune", Region: "West", Location: "Maharashtra",
			Budget: qty(125000000), Status: ProjectInProgress, Completion: qty(65), Priority: "High",
			ProjectType: ProjectTypeBoth, TowerType: "Type A - 765kV", SubstationType: "765kV GIS", LineLength: qty(280),
			StartDate: "2024-03-15", EndDate: "2026-06-30",
			MaterialRequirements: []MaterialRequirement{
				{MaterialID: "MAT001", Quantity: qty(42), Allocated: qty(30), Pending: qty(12)},
				{MaterialID: "MAT004", Quantity: qty(28000), Allocated: qty(20000), Pending: qty(8000)},
				{MaterialID: "MAT006", Quantity: qty(1260), Allocated: qty(850), Pending: qty(410)},
				{MaterialID: "MAT008", Quantity: qty(12), Allocated: qty(8), Pending: qty(4)},
				{MaterialID: "MAT010", Quantity: qty(6), Allocated: qty(4), Pending: qty(2)},
			},
		},
		{
			ID: "PRJ002", Name: "400kV Substation - Delhi NCR", Region: "North", Location: "Delhi NCR",
			Budget: qty(89000000), Status: ProjectInProgress, Completion: qty(42), Priority: "Medium",
			ProjectType: ProjectTypeBoth, TowerType: "Type B - 400kV", SubstationType: "400kV AIS", LineLength: qty(120),
			StartDate: "2024-06-01", EndDate: "2025-12-31",
			MaterialRequirements: []MaterialRequirement{
				{MaterialID: "MAT002", Quantity: qty(28), Allocated: qty(18), Pending: qty(10)},
				{MaterialID: "MAT005", Quantity: qty(12000), Allocated: qty(8000), Pending: qty(4000)},
				{MaterialID: "MAT007", Quantity: qty(840), Allocated: qty(560), Pending: qty(280)},
				{MaterialID: "MAT009", Quantity: qty(8), Allocated: qty(6), Pending: qty(2)},
				{MaterialID: "MAT011", Quantity: qty(4), Allocated: qty(2), Pending: qty(2)},
			},
		},
		{
			ID: "PRJ003", Name: "220kV Grid Extension - Bangalore", Region: "South", Location: "Karnataka",
			Budget: qty(67000000), Status: ProjectPlanning, Completion: qty(15), Priority: "Low",
			ProjectType: ProjectTypeBoth, TowerType: "Type C - 220kV", SubstationType: "220kV Hybrid", LineLength: qty(185),
			StartDate: "2025-01-10", EndDate: "2026-08-20",
			MaterialRequirements: []MaterialRequirement{
				{MaterialID: "MAT003", Quantity: qty(35), Allocated: qty(10), Pending: qty(25)},
				{MaterialID: "MAT005", Quantity: qty(18500), Allocated: qty(5000), Pending: qty(13500)},
				{MaterialID: "MAT006", Quantity: qty(1050), Allocated: qty(300), Pending: qty(750)},
				{MaterialID: "MAT009", Quantity: qty(6), Allocated: qty(2), Pending: qty(4)},
				{MaterialID: "MAT011", Quantity: qty(3), Allocated: qty(0), Pending: qty(3)},
			},
		},
		{
			ID: "PRJ004", Name: "765kV HVDC Link - Chennai-Hyderabad", Region: "South", Location: "Tamil Nadu",
			Budget: qty(153000000), Status: ProjectInProgress, Completion: qty(78), Priority: "Critical",
			ProjectType: ProjectTypeBoth, TowerType: "Type A - 765kV", SubstationType: "765kV GIS", LineLength: qty(625),
			StartDate: "2023-09-01", EndDate: "2025-11-30",
			MaterialRequirements: []MaterialRequirement{
				{MaterialID: "MAT001", Quantity: qty(75), Allocated: qty(68), Pending: qty(7)},
				{MaterialID: "MAT004", Quantity: qty(62500), Allocated: qty(58000), Pending: qty(4500)},
				{MaterialID: "MAT006", Quantity: qty(2250), Allocated: qty(2100), Pending: qty(150)},
				{MaterialID: "MAT008", Quantity: qty(18), Allocated: qty(16), Pending: qty(2)},
				{MaterialID: "MAT010", Quantity: qty(9), Allocated: qty(8), Pending: qty(1)},
			},
		},
	}
}

func seedForecastEntries() []ForecastEntry {
	return []ForecastEntry{
		{ID: "FC001", ProjectID: "PRJ001", MaterialID: "MAT001", Month: "2025-06", ForecastedQty: dec("25"), ActualQty: decPtr("24"), Confidence: dec("94"), Accuracy: decPtr("96")},
		{ID: "FC002", ProjectID: "PRJ001", MaterialID: "MAT004", Month: "2025-07", ForecastedQty: dec("15000"), ActualQty: decPtr("14800"), Confidence: dec("92"), Accuracy: decPtr("98.7")},
		{ID: "FC003", ProjectID: "PRJ002", MaterialID: "MAT002", Month: "2025-08", ForecastedQty: dec("18"), ActualQty: decPtr("17"), Confidence: dec("89"), Accuracy: decPtr("94.4")},
		{ID: "FC004", ProjectID: "PRJ004", MaterialID: "MAT001", Month: "2025-09", ForecastedQty: dec("12"), ActualQty: decPtr("13"), Confidence: dec("96"), Accuracy: decPtr("91.7")},
		{ID: "FC005", ProjectID: "PRJ001", MaterialID: "MAT001", Month: "2025-10", ForecastedQty: dec("27"), ActualQty: decPtr("26"), Confidence: dec("93"), Accuracy: decPtr("96.3")},
		{ID: "FC006", ProjectID: "PRJ003", MaterialID: "MAT003", Month: "2025-11", ForecastedQty: dec("35"), ActualQty: decPtr("34"), Confidence: dec("88"), Accuracy: decPtr("97.1")},
		{ID: "FC007", ProjectID: "PRJ001", MaterialID: "MAT001", Month: "2025-12", ForecastedQty: dec("28"), ActualQty: nil, Confidence: dec("94"), Accuracy: nil},
		{ID: "FC008", ProjectID: "PRJ002", MaterialID: "MAT004", Month: "2026-01", ForecastedQty: dec("16000"), ActualQty: nil, Confidence: dec("91"), Accuracy: nil},
	}
}

func seedProcurementOrders() []ProcurementOrder {
	return []ProcurementOrder{
		{ID: "PO001", MaterialID: "MAT001", SupplierID: "SUP001", Quantity: qty(50), UnitCost: qty(850000), TotalCost: qty(42500000), OrderDate: "2025-11-15", ExpectedDate: "2025-12-30", Status: OrderPending, ProjectID: "PRJ001", TriggerReason: "Low Stock Alert"},
		{ID: "PO002", MaterialID: "MAT004", SupplierID: "SUP002", Quantity: qty(20000), UnitCost: qty(450), TotalCost: qty(9000000), OrderDate: "2025-11-18", ExpectedDate: "2025-12-18", Status: OrderInTransit, ProjectID: "PRJ001", TriggerReason: "Forecast Demand"},
		{ID: "PO003", MaterialID: "MAT010", SupplierID: "SUP005", Quantity: qty(3), UnitCost: qty(8500000), TotalCost: qty(25500000), OrderDate: "2025-11-10", ExpectedDate: "2026-03-10", Status: OrderInTransit, ProjectID: "PRJ001", TriggerReason: "Project Requirement"},
		{ID: "PO004", MaterialID: "MAT006", SupplierID: "SUP003", Quantity: qty(1500), UnitCost: qty(1200), TotalCost: qty(1800000), OrderDate: "2025-11-20", ExpectedDate: "2025-12-15", Status: OrderPending, ProjectID: "PRJ002", TriggerReason: "Safety Stock"},
		{ID: "PO005", MaterialID: "MAT002", SupplierID: "SUP001", Quantity: qty(40), UnitCost: qty(520000), TotalCost: qty(20800000), OrderDate: "2025-11-22", ExpectedDate: "2026-01-06", Status: OrderApproved, ProjectID: "PRJ002", TriggerReason: "Forecast Demand"},
	}
}
