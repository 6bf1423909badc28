// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/omarket-go/internal/model"
)

// DemoCatalog returns the demo project listings used for seeding a
// fresh storefront.
func DemoCatalog() []model.Project {
	return []model.Project{
		{
			ID:              "1",
			Name:            "Advanced Data Scraper",
			Slug:            "advanced-data-scraper",
			Type:            model.ProjectTypePython,
			Price:           49.99,
			Description:     "A powerful Python script to scrape any dynamic website using Selenium and BeautifulSoup.",
			LongDescription: "This project provides a robust framework for extracting data from complex web applications. It includes automatic proxy rotation, headless browser support, and multi-threaded processing to speed up data collection. Perfect for market research and competitive analysis.",
			ImageURL:        "https://picsum.photos/seed/py1/800/600",
			Features:        []string{"Concurrent scraping", "CSV/JSON Export", "Proxy support", "Error logging"},
		},
		{
			ID:              "2",
			Name:            "E-commerce UI Kit",
			Slug:            "e-commerce-ui-kit",
			Type:            model.ProjectTypeHTML,
			Price:           29.99,
			Description:     "Modern HTML/Tailwind template for building high-conversion landing pages.",
			LongDescription: "A premium HTML template built with utility-first CSS. It includes over 20 pre-built components, responsive design, and optimized performance. Easily customizable and ready for integration with any backend framework.",
			ImageURL:        "https://picsum.photos/seed/html1/800/600",
			Features:        []string{"Fully Responsive", "Tailwind Config included", "Light/Dark mode", "SEO Optimized"},
		},
		{
			ID:              "3",
			Name:            "Automated Trading Bot",
			Slug:            "automated-trading-bot",
			Type:            model.ProjectTypePython,
			Price:           199.99,
			Description:     "A sophisticated bot that executes trades based on technical indicators.",
			LongDescription: "Leverage the power of Python to automate your trading strategy. This bot connects to major exchanges via API, monitors price movements, and executes buy/sell orders based on RSI and Moving Averages. Includes a backtesting module.",
			ImageURL:        "https://picsum.photos/seed/py2/800/600",
			Features:        []string{"API Integration", "Backtesting engine", "Live notifications", "Strategy builder"},
		},
		{
			ID:              "4",
			Name:            "Portfolio Template",
			Slug:            "portfolio-template",
			Type:            model.ProjectTypeHTML,
			Price:           15.00,
			Description:     "Sleek and minimal portfolio for developers and designers.",
			LongDescription: "Showcase your work with style. This HTML template features smooth scrolling, lazy loading images, and a clean contact form. Perfect for presenting projects to potential employers or clients.",
			ImageURL:        "https://picsum.photos/seed/html2/800/600",
			Features:        []string{"Clean Code", "Animation Support", "Custom Icons", "Fast Loading"},
		},
		{
			ID:              "5",
			Name:            "Machine Learning Image Classifier",
			Slug:            "machine-learning-image-classifier",
			Type:            model.ProjectTypePython,
			Price:           89.00,
			Description:     "Pre-trained CNN model for classifying images into various categories.",
			LongDescription: "Jumpstart your AI project with this pre-trained classifier. Using TensorFlow and Keras, this script can identify thousands of object categories with high accuracy. Includes training scripts for custom datasets.",
			ImageURL:        "https://picsum.photos/seed/py3/800/600",
			Features:        []string{"Pre-trained weights", "Web API wrapper", "Data augmentation", "Visualization tools"},
		},
	}
}

// Seed writes the demo catalog into the projects slot of a fresh
// database. An existing projects snapshot is left untouched.
func Seed(ctx context.Context, snaps *Snapshots) error {
	_, err := snaps.Get(ctx, SlotProjects)
	if err == nil {
		slog.Info("projects snapshot already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, ErrNoSnapshot) {
		return fmt.Errorf("checking projects snapshot: %w", err)
	}

	data, err := json.Marshal(DemoCatalog())
	if err != nil {
		return fmt.Errorf("encoding demo catalog: %w", err)
	}
	if err := snaps.Put(ctx, SlotProjects, data); err != nil {
		return fmt.Errorf("seeding demo catalog: %w", err)
	}

	slog.Info("seeded demo catalog", "projects", len(DemoCatalog()))
	return nil
}
