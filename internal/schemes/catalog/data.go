package catalog

import "schemesathi/internal/models"

const nbmPortal = "https://gsws-nbm.ap.gov.in/NBM/"

func age(min, max int) models.AgeRange {
	return models.AgeRange{MinimumAge: min, MaximumAge: max}
}

func cats(c ...models.SocialCategory) []models.SocialCategory {
	if len(c) == 0 {
		return []models.SocialCategory{}
	}
	return c
}

// apSchemes is the Andhra Pradesh catalog in display order.
var apSchemes = []models.Scheme{
	{
		SchemeID:         "aadabidda-nidhi",
		SchemeName:       "Aadabidda Nidhi Scheme",
		Description:      "A flagship women empowerment scheme providing direct financial assistance to eligible women.",
		Category:         models.SchemeWomen,
		BenefitAmount:    1500,
		BenefitCurrency:  "INR",
		ApplicablePortal: nbmPortal,
		EligibilityCriteria: models.EligibilityCriteria{
			AgeRange:               age(18, 59),
			IncomeLimit:            120000,
			SocialCategoryRequired: cats(models.CategorySC, models.CategoryST, models.CategoryBC),
		},
		DocumentsRequired:  []string{"Aadhaar Card", "White Ration Card", "Bank Account Passbook"},
		ApplicationProcess: "Application status can be tracked through the official NBM Portal.",
	},
	{
		SchemeID:         "annadata-sukhibhava",
		SchemeName:       "Annadata Sukhibhava Scheme",
		Description:      "Provides annual financial assistance to small and marginal farmers.",
		Category:         models.SchemeFarmer,
		BenefitAmount:    20000,
		BenefitCurrency:  "INR",
		ApplicablePortal: "https://annadatasukhibhava.ap.gov.in",
		EligibilityCriteria: models.EligibilityCriteria{
			AgeRange:               age(18, 100),
			IncomeLimit:            NoIncomeLimit,
			SocialCategoryRequired: cats(),
		},
		DocumentsRequired:  []string{"Aadhaar Card", "Land Ownership Document", "Bank Account Passbook"},
		ApplicationProcess: "Applications are made through Raithu Seva Kendrams (Farmer Service Centers).",
	},
	{
		SchemeID:         "ysr-vahana-mitra",
		SchemeName:       "YSR Vahana Mitra Scheme (Auto Driver Sevalo)",
		Description:      "Provides annual financial assistance to self-employed auto and taxi drivers.",
		Category:         models.SchemeDriver,
		BenefitAmount:    15000,
		BenefitCurrency:  "INR",
		ApplicablePortal: nbmPortal,
		EligibilityCriteria: models.EligibilityCriteria{
			AgeRange:               age(18, 100),
			IncomeLimit:            144000,
			SocialCategoryRequired: cats(),
		},
		DocumentsRequired:  []string{"Aadhaar Number", "Valid Driving License", "BPL/White Ration Card"},
		ApplicationProcess: "Application status can be tracked on the Navasakam Beneficiary Management (NBM) Portal.",
	},
	{
		SchemeID:         "thalliki-vandanam",
		SchemeName:       "Thalliki Vandanam Scheme",
		Description:      "Provides annual financial assistance to mothers/guardians of school children.",
		Category:         models.SchemeStudent,
		BenefitAmount:    15000,
		BenefitCurrency:  "INR",
		ApplicablePortal: nbmPortal,
		EligibilityCriteria: models.EligibilityCriteria{
			AgeRange:               age(1, 100),
			IncomeLimit:            120000,
			SocialCategoryRequired: cats(),
		},
		DocumentsRequired:  []string{"Student School Registration Details", "Aadhaar Card (mother's)", "White Ration Card"},
		ApplicationProcess: "Eligible lists and payment status can be checked on the GSWS NBM Portal.",
	},
	{
		SchemeID:         "dr-ntr-vaidya-seva",
		SchemeName:       "Dr. NTR Vaidya Seva Scheme",
		Description:      "Provides cashless healthcare coverage up to ₹25 lakh per beneficiary annually.",
		Category:         models.SchemeHealth,
		BenefitAmount:    2500000,
		BenefitCurrency:  "INR",
		ApplicablePortal: "https://drntrvaidyaseva.ap.gov.in",
		EligibilityCriteria: models.EligibilityCriteria{
			AgeRange:               age(0, 100),
			IncomeLimit:            NoIncomeLimit,
			SocialCategoryRequired: cats(),
		},
		DocumentsRequired:  []string{"Aadhaar Card", "White Ration Card", "Health Card"},
		ApplicationProcess: "Beneficiaries can get their health card and view the hospital network on the official portal.",
		AlwaysEligible:     true,
	},
	{
		SchemeID:         "ysr-cheyutha",
		SchemeName:       "YSR Cheyutha Scheme",
		Description:      "Provides financial assistance over four years to eligible women for livelihood empowerment.",
		Category:         models.SchemeWomen,
		BenefitAmount:    18750,
		BenefitCurrency:  "INR",
		ApplicablePortal: nbmPortal,
		EligibilityCriteria: models.EligibilityCriteria{
			AgeRange:               age(45, 60),
			IncomeLimit:            120000,
			SocialCategoryRequired: cats(models.CategorySC, models.CategoryST, models.CategoryBC, models.CategoryMinority),
		},
		DocumentsRequired:  []string{"Aadhaar Card", "Caste Certificate", "Income Certificate"},
		ApplicationProcess: "Applications can be made through the Navasakam Beneficiary Management Portal.",
	},
	{
		SchemeID:         "indiramma-housing",
		SchemeName:       "INDIRAMMA Housing Scheme",
		Description:      "Provides a subsidy to construct permanent houses for BPL families.",
		Category:         models.SchemeHousing,
		BenefitAmount:    500000,
		BenefitCurrency:  "INR",
		ApplicablePortal: "https://housing.ap.gov.in",
		EligibilityCriteria: models.EligibilityCriteria{
			AgeRange:               age(18, 100),
			IncomeLimit:            120000,
			SocialCategoryRequired: cats(),
		},
		DocumentsRequired:  []string{"Aadhaar Card", "BPL/White Ration Card", "Land Ownership Documents"},
		ApplicationProcess: "Applications and information are available on the AP Housing Department portal.",
	},
	{
		SchemeID:         "ap-skill-development",
		SchemeName:       "AP Skill Development Schemes (APSSDC & PMKVY)",
		Description:      "Offers free vocational training and job placement assistance to youth.",
		Category:         models.SchemeEmployment,
		BenefitAmount:    0,
		BenefitCurrency:  "INR",
		ApplicablePortal: "https://naipunyam.ap.gov.in",
		EligibilityCriteria: models.EligibilityCriteria{
			AgeRange:               age(18, 35),
			IncomeLimit:            NoIncomeLimit,
			SocialCategoryRequired: cats(),
		},
		DocumentsRequired:  []string{"Aadhaar Card", "Educational Certificate", "Identity Proof"},
		ApplicationProcess: "Registration and training information is available on the Naipunyam Portal.",
	},
	{
		SchemeID:         "ntr-bharosa-pension",
		SchemeName:       "NTR Bharosa Pension Scheme",
		Description:      "Provides monthly financial assistance to various vulnerable groups.",
		Category:         models.SchemeGeneral,
		BenefitAmount:    4000,
		BenefitCurrency:  "INR",
		ApplicablePortal: "https://sspensions.ap.gov.in",
		EligibilityCriteria: models.EligibilityCriteria{
			AgeRange:               age(60, 100),
			IncomeLimit:            120000,
			SocialCategoryRequired: cats(),
		},
		DocumentsRequired:  []string{"Aadhaar Card", "Age Proof", "Bank Account Details"},
		ApplicationProcess: "Application and status checks can be done through the SS Pension Portal.",
	},
	{
		SchemeID:         "dokka-seethamma-midday-meal",
		SchemeName:       "Dokka Seethamma Midday Meal Scheme (PM POSHAN)",
		Description:      "Provides free nutritious meals to government school students daily.",
		Category:         models.SchemeStudent,
		BenefitAmount:    0,
		BenefitCurrency:  "INR",
		ApplicablePortal: "https://pmposhan.education.gov.in",
		EligibilityCriteria: models.EligibilityCriteria{
			AgeRange:               age(6, 14),
			IncomeLimit:            NoIncomeLimit,
			SocialCategoryRequired: cats(),
		},
		DocumentsRequired:  []string{"School Registration/Enrollment Details"},
		ApplicationProcess: "Students are automatically covered upon enrollment in a government school.",
	},
	{
		SchemeID:         "rythu-bharosa",
		SchemeName:       "Rythu Bharosa Scheme",
		Description:      "A farmer investment support scheme providing financial assistance to land-owning farmers.",
		Category:         models.SchemeFarmer,
		BenefitAmount:    13500,
		BenefitCurrency:  "INR",
		ApplicablePortal: "https://gramawardsachivalayam.ap.gov.in/GSWS/Home/Main",
		EligibilityCriteria: models.EligibilityCriteria{
			AgeRange:               age(18, 100),
			IncomeLimit:            NoIncomeLimit,
			SocialCategoryRequired: cats(),
		},
		DocumentsRequired:  []string{"Aadhaar Card", "Land ownership documents (Pattadar Passbook)", "Bank account details"},
		ApplicationProcess: "Farmers can apply through the local Village/Ward Secretariat (Sachivalayam).",
	},
	{
		SchemeID:         "ysr-kapu-nestham",
		SchemeName:       "YSR Kapu Nestham",
		Description:      "Provides financial assistance to women of the Kapu, Balija, Telaga, and Ontari communities.",
		Category:         models.SchemeWomen,
		BenefitAmount:    15000,
		BenefitCurrency:  "INR",
		ApplicablePortal: nbmPortal,
		EligibilityCriteria: models.EligibilityCriteria{
			AgeRange:               age(45, 60),
			IncomeLimit:            120000,
			SocialCategoryRequired: cats(models.CategoryGeneral),
		},
		DocumentsRequired:  []string{"Aadhaar Card", "Caste certificate", "Income certificate"},
		ApplicationProcess: "Applications can be submitted through the local Village/Ward Secretariat (Sachivalayam).",
	},
	{
		SchemeID:         "ysr-pension-kanuka",
		SchemeName:       "YSR Pension Kanuka",
		Description:      "A comprehensive social security pension scheme for various vulnerable sections.",
		Category:         models.SchemeGeneral,
		BenefitAmount:    3000,
		BenefitCurrency:  "INR",
		ApplicablePortal: "https://sspensions.ap.gov.in/default.aspx",
		EligibilityCriteria: models.EligibilityCriteria{
			AgeRange:               age(60, 100),
			IncomeLimit:            120000,
			SocialCategoryRequired: cats(),
		},
		DocumentsRequired:  []string{"Aadhaar Card", "White Ration Card", "Bank Account Passbook"},
		ApplicationProcess: "Applications are submitted at the Village/Ward Secretariat.",
	},
	{
		SchemeID:         "jagananna-vidya-deevena",
		SchemeName:       "Jagananna Vidya Deevena",
		Description:      "A full fee reimbursement scheme for students pursuing post-matric courses.",
		Category:         models.SchemeStudent,
		BenefitAmount:    0,
		BenefitCurrency:  "INR",
		ApplicablePortal: "https://jnanabhumi.ap.gov.in/",
		EligibilityCriteria: models.EligibilityCriteria{
			AgeRange:    age(15, 40),
			IncomeLimit: 250000,
			SocialCategoryRequired: cats(models.CategorySC, models.CategoryST, models.CategoryBC,
				models.CategoryEBC, models.CategoryKapu, models.CategoryMinority),
		},
		DocumentsRequired:  []string{"Aadhaar Card of student and parents", "Caste and Income certificates", "College admission details"},
		ApplicationProcess: "Students apply through the Jnanabhumi portal.",
	},
	{
		SchemeID:         "ysr-matsyakara-bharosa",
		SchemeName:       "YSR Matsyakara Bharosa",
		Description:      "Provides financial support to fishermen during the annual marine fishing ban period.",
		Category:         models.SchemeFisherman,
		BenefitAmount:    10000,
		BenefitCurrency:  "INR",
		ApplicablePortal: "https://apfisheries.gov.in/",
		EligibilityCriteria: models.EligibilityCriteria{
			AgeRange:               age(18, 60),
			IncomeLimit:            NoIncomeLimit,
			SocialCategoryRequired: cats(),
		},
		DocumentsRequired:  []string{"Aadhaar Card", "Fisherman Biometric ID Card", "Boat Registration Certificate"},
		ApplicationProcess: "Applications are processed through the Fisheries Department.",
	},
}
