// Package models defines the documents stored in MongoDB and shared across
// the store, handler, and seed layers.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hero is the landing section copy.
type Hero struct {
	Title    string `bson:"title" json:"title"`
	Subtitle string `bson:"subtitle" json:"subtitle"`
	CTAText  string `bson:"ctaText" json:"ctaText"`
}

// About is the about section copy.
type About struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
}

// ProjectsSection is the copy framing the project gallery.
type ProjectsSection struct {
	Title            string `bson:"title" json:"title"`
	Subtitle         string `bson:"subtitle" json:"subtitle"`
	GithubButtonText string `bson:"githubButtonText" json:"githubButtonText"`
}

// ContactSection is the contact form and footer copy.
type ContactSection struct {
	Title              string `bson:"title" json:"title"`
	Subtitle           string `bson:"subtitle" json:"subtitle"`
	FormTitle          string `bson:"formTitle" json:"formTitle"`
	EmailPlaceholder   string `bson:"emailPlaceholder" json:"emailPlaceholder"`
	MessagePlaceholder string `bson:"messagePlaceholder" json:"messagePlaceholder"`
	ButtonText         string `bson:"buttonText" json:"buttonText"`
	InfoEmail          string `bson:"infoEmail" json:"infoEmail"`
	InfoPhone          string `bson:"infoPhone" json:"infoPhone"`
	InfoAddress        string `bson:"infoAddress" json:"infoAddress"`
	FooterText         string `bson:"footerText" json:"footerText"`
}

// SEO holds page metadata for search engines.
type SEO struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Keywords    string `bson:"keywords" json:"keywords"`
}

// SiteConfig is the singleton document holding all editable site copy.
// Exactly one instance exists at any time; it is created lazily with
// defaults on first read and replaced wholesale on authenticated writes.
type SiteConfig struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Hero            Hero               `bson:"hero" json:"hero"`
	About           About              `bson:"about" json:"about"`
	ProjectsSection ProjectsSection    `bson:"projectsSection" json:"projectsSection"`
	Contact         ContactSection     `bson:"contact" json:"contact"`
	SEO             SEO                `bson:"seo" json:"seo"`
}

// DefaultSiteConfig returns the copy served before the owner has edited
// anything.
func DefaultSiteConfig() *SiteConfig {
	return &SiteConfig{
		Hero: Hero{
			Title:    "Building at the Edge of Time and Tide",
			Subtitle: "Where sky meets ocean, I connect pixels and data into digital experiences that leave a trace in the flow of time.",
			CTAText:  "Explore My Work",
		},
		About: About{
			Title:       "A developer, a designer, an explorer of deep blue.",
			Description: "Writing code is not just putting characters on a screen; it is the craft of catching ideas drifting in the void and shaping them into something real.",
		},
		ProjectsSection: ProjectsSection{
			Title:            "Selected Projects",
			Subtitle:         "Pieces of code that outlast the moment.",
			GithubButtonText: "More on GitHub",
		},
		Contact: ContactSection{
			Title:              "Get in Touch",
			Subtitle:           "One message away from leaving a mark in the digital world.",
			FormTitle:          "Send a Message",
			EmailPlaceholder:   "Your email address",
			MessagePlaceholder: "Tell me about your project...",
			ButtonText:         "Send",
			InfoEmail:          "contact@musubi.dev",
			InfoPhone:          "+00 000 000 00 00",
			InfoAddress:        "Istanbul",
			FooterText:         "© Musubi. Coded in the deep blue.",
		},
		SEO: SEO{
			Title:       "Musubi Portfolio | Digital Art & Code",
			Description: "Personal portfolio built with modern web technologies.",
			Keywords:    "developer, portfolio, web design",
		},
	}
}
