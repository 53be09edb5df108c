package registry

// builtinSpecs is the authoritative source of truth for the nutrient catalogue.
// Normal ranges follow common adult reference intervals; plausible ranges are
// deliberately wide sanity bounds so genuinely abnormal readings survive while
// OCR garbage is rejected.
func builtinSpecs() []NutrientSpec {
	return []NutrientSpec{
		// ===== VITAMINS =====
		{
			Key: "vitamin_d", Unit: "ng/mL",
			Normal: Range{30, 100}, Plausible: Range{1, 200},
			Aliases: []string{
				"vitamin d", "vit d", "vitamin d3", "cholecalciferol",
				"25(oh)d", "25-oh vitamin d", "25(oh) vitamin d", "25-hydroxy",
				"25-hydroxyvitamin d", "vitamin d, 25-hydroxy", "vitamin d 25-hydroxy",
			},
		},
		{
			Key: "vitamin_b12", Unit: "pg/mL",
			Normal: Range{200, 900}, Plausible: Range{50, 5000},
			Aliases: []string{
				"vitamin b12", "vitamin b-12", "b12", "b-12", "vit b12",
				"cobalamin", "cyanocobalamin", "methylcobalamin",
			},
		},
		{
			Key: "folate", Unit: "ng/mL",
			Normal: Range{2.7, 17.0}, Plausible: Range{0.5, 50},
			Aliases: []string{"folic acid", "folate (folic acid)", "vitamin b9", "serum folate"},
		},
		{
			Key: "vitamin_b6", Unit: "ng/mL",
			Normal: Range{5, 50}, Plausible: Range{1, 300},
			Aliases: []string{"vitamin b6", "vitamin b-6", "pyridoxine"},
		},
		{
			Key: "vitamin_a", Unit: "mcg/dL",
			Normal: Range{20, 60}, Plausible: Range{5, 200},
			Aliases: []string{"vitamin a", "retinol"},
		},
		{
			Key: "vitamin_e", Unit: "mg/L",
			Normal: Range{5.5, 17.0}, Plausible: Range{1, 60},
			Aliases: []string{"vitamin e", "alpha-tocopherol", "tocopherol"},
		},
		{
			Key: "vitamin_c", Unit: "mg/dL",
			Normal: Range{0.4, 2.0}, Plausible: Range{0.05, 10},
			Aliases: []string{"vitamin c", "ascorbic acid"},
		},

		// ===== IRON STUDIES =====
		{
			Key: "iron", Unit: "mcg/dL",
			Normal: Range{60, 170}, Plausible: Range{10, 500},
			Aliases: []string{"serum iron", "iron, serum", "iron serum"},
		},
		{
			Key: "ferritin", Unit: "ng/mL",
			Normal: Range{15, 150}, Plausible: Range{1, 2000},
			Aliases: []string{"serum ferritin"},
		},
		{
			Key: "tibc", Unit: "mcg/dL",
			Normal: Range{240, 450}, Plausible: Range{100, 800},
			Aliases: []string{"total iron binding capacity", "iron binding capacity"},
		},
		{
			Key: "transferrin", Unit: "mg/dL",
			Normal: Range{200, 360}, Plausible: Range{50, 700},
			Aliases: []string{"serum transferrin"},
		},

		// ===== MINERALS & ELECTROLYTES =====
		{
			Key: "calcium", Unit: "mg/dL",
			Normal: Range{8.5, 10.5}, Plausible: Range{4, 20},
			Aliases: []string{"serum calcium", "calcium, serum", "calcium total"},
		},
		{
			Key: "magnesium", Unit: "mg/dL",
			Normal: Range{1.7, 2.2}, Plausible: Range{0.5, 10},
			Aliases: []string{"serum magnesium", "magnesium, serum"},
		},
		{
			Key: "zinc", Unit: "mcg/dL",
			Normal: Range{70, 120}, Plausible: Range{10, 500},
			Aliases: []string{"serum zinc", "zinc, serum"},
		},
		{
			Key: "phosphorus", Unit: "mg/dL",
			Normal: Range{2.5, 4.5}, Plausible: Range{0.5, 15},
			Aliases: []string{"phosphate", "serum phosphorus"},
		},
		{
			Key: "copper", Unit: "mcg/dL",
			Normal: Range{70, 140}, Plausible: Range{10, 500},
			Aliases: []string{"serum copper"},
		},
		{
			Key: "selenium", Unit: "mcg/L",
			Normal: Range{70, 150}, Plausible: Range{10, 500},
			Aliases: []string{"serum selenium"},
		},
		{
			Key: "sodium", Unit: "mEq/L",
			Normal: Range{136, 145}, Plausible: Range{100, 200},
			Aliases: []string{"serum sodium", "sodium, serum"},
		},
		{
			Key: "potassium", Unit: "mEq/L",
			Normal: Range{3.5, 5.0}, Plausible: Range{1, 10},
			Aliases: []string{"serum potassium", "potassium, serum"},
		},
		{
			Key: "chloride", Unit: "mEq/L",
			Normal: Range{98, 106}, Plausible: Range{70, 140},
			Aliases: []string{"serum chloride"},
		},
		{
			Key: "co2", Unit: "mEq/L",
			Normal: Range{23, 29}, Plausible: Range{10, 45},
			Aliases: []string{"carbon dioxide", "bicarbonate", "hco3"},
		},

		// ===== HEMATOLOGY =====
		{
			Key: "hemoglobin", Unit: "g/dL",
			Normal: Range{12.0, 16.0}, Plausible: Range{3, 25},
			Aliases: []string{"hgb", "haemoglobin"},
		},
		{
			Key: "hematocrit", Unit: "%",
			Normal: Range{36, 48}, Plausible: Range{10, 70},
			Aliases: []string{"hct", "haematocrit"},
		},
		{
			Key: "rbc", Unit: "million/uL",
			Normal: Range{4.2, 5.9}, Plausible: Range{1, 10},
			Aliases: []string{"red blood cells", "red blood cell count", "erythrocytes", "rbc count"},
		},
		{
			Key: "wbc", Unit: "thousand/uL",
			Normal: Range{4.5, 11.0}, Plausible: Range{0.5, 100},
			Aliases: []string{"white blood cells", "white blood cell count", "leukocytes", "wbc count"},
		},
		{
			Key: "platelets", Unit: "thousand/uL",
			Normal: Range{150, 400}, Plausible: Range{10, 2000},
			Aliases: []string{"platelet count", "plt"},
		},
		{
			Key: "mcv", Unit: "fL",
			Normal: Range{80, 100}, Plausible: Range{40, 200},
			Aliases: []string{"mean corpuscular volume"},
		},
		{
			Key: "mch", Unit: "pg",
			Normal: Range{27, 33}, Plausible: Range{10, 60},
			Aliases: []string{"mean corpuscular hemoglobin"},
		},
		{
			Key: "mchc", Unit: "g/dL",
			Normal: Range{32, 36}, Plausible: Range{20, 45},
			Aliases: []string{"mean corpuscular hemoglobin concentration"},
		},

		// ===== METABOLIC PANEL =====
		{
			Key: "glucose", Unit: "mg/dL",
			Normal: Range{70, 100}, Plausible: Range{20, 1000},
			Aliases: []string{"blood glucose", "fasting glucose", "blood sugar", "glucose, fasting"},
		},
		{
			Key: "hba1c", Unit: "%",
			Normal: Range{4.0, 5.6}, Plausible: Range{2, 20},
			Aliases: []string{"a1c", "hemoglobin a1c", "glycated hemoglobin", "hb a1c", "hgb a1c"},
		},
		{
			Key: "insulin", Unit: "uIU/mL",
			Normal: Range{2, 20}, Plausible: Range{0.5, 300},
			Aliases: []string{"fasting insulin", "insulin, fasting"},
		},
		{
			Key: "creatinine", Unit: "mg/dL",
			Normal: Range{0.6, 1.3}, Plausible: Range{0.1, 20},
			Aliases: []string{"serum creatinine", "creatinine, serum"},
		},
		{
			Key: "bun", Unit: "mg/dL",
			Normal: Range{7, 20}, Plausible: Range{1, 150},
			Aliases: []string{"blood urea nitrogen", "urea nitrogen", "urea"},
		},
		{
			Key: "uric_acid", Unit: "mg/dL",
			Normal: Range{3.5, 7.2}, Plausible: Range{0.5, 20},
			Aliases: []string{"uric acid", "urate"},
		},
		{
			Key: "egfr", Unit: "mL/min",
			Normal: Range{90, 120}, Plausible: Range{5, 200},
			Aliases: []string{"estimated gfr", "gfr"},
		},
		{
			Key: "albumin", Unit: "g/dL",
			Normal: Range{3.4, 5.4}, Plausible: Range{1, 8},
			Aliases: []string{"serum albumin", "albumin, serum"},
		},
		{
			Key: "total_protein", Unit: "g/dL",
			Normal: Range{6.0, 8.3}, Plausible: Range{3, 12},
			Aliases: []string{"total protein", "protein, total"},
		},
		{
			Key: "bilirubin_total", Unit: "mg/dL",
			Normal: Range{0.1, 1.2}, Plausible: Range{0.01, 30},
			Aliases: []string{"total bilirubin", "bilirubin, total", "bilirubin"},
		},

		// ===== LIPID PANEL =====
		{
			Key: "total_cholesterol", Unit: "mg/dL",
			Normal: Range{125, 200}, Plausible: Range{50, 500},
			Aliases: []string{"total cholesterol", "cholesterol, total", "cholesterol", "total chol"},
		},
		{
			Key: "ldl_cholesterol", Unit: "mg/dL",
			Normal: Range{50, 100}, Plausible: Range{10, 400},
			Aliases: []string{"ldl cholesterol", "ldl", "ldl-c", "ldl chol", "low density lipoprotein"},
		},
		{
			Key: "hdl_cholesterol", Unit: "mg/dL",
			Normal: Range{40, 90}, Plausible: Range{10, 150},
			Aliases: []string{"hdl cholesterol", "hdl", "hdl-c", "hdl chol", "high density lipoprotein"},
		},
		{
			Key: "triglycerides", Unit: "mg/dL",
			Normal: Range{50, 150}, Plausible: Range{10, 2000},
			Aliases: []string{"trigs", "triglyceride"},
		},

		// ===== LIVER ENZYMES =====
		{
			Key: "alt", Unit: "U/L",
			Normal: Range{7, 56}, Plausible: Range{1, 2000},
			Aliases: []string{"alanine aminotransferase", "sgpt"},
		},
		{
			Key: "ast", Unit: "U/L",
			Normal: Range{10, 40}, Plausible: Range{1, 2000},
			Aliases: []string{"aspartate aminotransferase", "sgot"},
		},
		{
			Key: "alp", Unit: "U/L",
			Normal: Range{44, 147}, Plausible: Range{10, 1500},
			Aliases: []string{"alkaline phosphatase"},
		},
		{
			Key: "ggt", Unit: "U/L",
			Normal: Range{9, 48}, Plausible: Range{1, 1500},
			Aliases: []string{"gamma-glutamyl transferase", "gamma gt"},
		},

		// ===== THYROID =====
		{
			Key: "tsh", Unit: "mIU/L",
			Normal: Range{0.4, 4.0}, Plausible: Range{0.01, 100},
			Aliases: []string{"thyroid stimulating hormone", "thyrotropin"},
		},
		{
			Key: "free_t4", Unit: "ng/dL",
			Normal: Range{0.8, 1.8}, Plausible: Range{0.1, 10},
			Aliases: []string{"free t4", "ft4", "free thyroxine", "t4, free", "t4 free"},
		},
		{
			Key: "free_t3", Unit: "pg/mL",
			Normal: Range{2.3, 4.2}, Plausible: Range{0.5, 20},
			Aliases: []string{"free t3", "ft3", "free triiodothyronine", "t3, free", "t3 free"},
		},

		// ===== INFLAMMATORY MARKERS =====
		{
			Key: "crp", Unit: "mg/L",
			Normal: Range{0.1, 3.0}, Plausible: Range{0.01, 500},
			Aliases: []string{"c-reactive protein", "hs-crp", "high sensitivity crp"},
		},
		{
			Key: "esr", Unit: "mm/hr",
			Normal: Range{1, 20}, Plausible: Range{0.5, 150},
			Aliases: []string{"sed rate", "erythrocyte sedimentation rate"},
		},

		// ===== HORMONES =====
		{
			Key: "testosterone", Unit: "ng/dL",
			Normal: Range{300, 1000}, Plausible: Range{10, 3000},
			Aliases: []string{"total testosterone", "testosterone, total"},
		},
		{
			Key: "cortisol", Unit: "mcg/dL",
			Normal: Range{6, 23}, Plausible: Range{0.5, 100},
			Aliases: []string{"serum cortisol", "am cortisol"},
		},
	}
}
