package i18n

// Labels is the typed view of one language's translation table.
type Labels struct {
	Nav      NavLabels
	Legal    LegalLabels
	Footer   FooterLabels
	Contact  ContactLabels
	Form     FormLabels
	Cookies  CookieLabels
	Language map[string]string
}

type NavLabels struct {
	Home       string
	Apartments string
	Parking    string
	About      string
	Contact    string
}

type LegalLabels struct {
	Privacy string
	Terms   string
	Cookies string
}

type FooterLabels struct {
	ContactUs  string
	QuickLinks string
	Legal      string
	Copyright  string
}

// ContactLabels holds the localized parts of the footer contact block.
type ContactLabels struct {
	CEOTitle string
	GMTitle  string
	Address  string
}

// FormLabels holds contact form feedback.
type FormLabels struct {
	NameRequired    string
	EmailRequired   string
	MessageRequired string
	ThankYou        string
}

// CookieLabels holds the consent banner copy.
type CookieLabels struct {
	Text    string
	Accept  string
	Decline string
	Policy  string
}

func newLabels(m map[string]string) Labels {
	return Labels{
		Nav: NavLabels{
			Home:       m["nav.home"],
			Apartments: m["nav.apartments"],
			Parking:    m["nav.parking"],
			About:      m["nav.about"],
			Contact:    m["nav.contact"],
		},
		Legal: LegalLabels{
			Privacy: m["legal.privacy"],
			Terms:   m["legal.terms"],
			Cookies: m["legal.cookies"],
		},
		Footer: FooterLabels{
			ContactUs:  m["footer.contact_us"],
			QuickLinks: m["footer.quick_links"],
			Legal:      m["footer.legal"],
			Copyright:  m["footer.copyright"],
		},
		Contact: ContactLabels{
			CEOTitle: m["contact.ceo_title"],
			GMTitle:  m["contact.gm_title"],
			Address:  m["contact.address"],
		},
		Form: FormLabels{
			NameRequired:    m["form.name_required"],
			EmailRequired:   m["form.email_required"],
			MessageRequired: m["form.message_required"],
			ThankYou:        m["form.thank_you"],
		},
		Cookies: CookieLabels{
			Text:    m["cookies.text"],
			Accept:  m["cookies.accept"],
			Decline: m["cookies.decline"],
			Policy:  m["cookies.policy"],
		},
		Language: map[string]string{
			"bg": m["language.bg"],
			"ru": m["language.ru"],
			"en": m["language.en"],
		},
	}
}
