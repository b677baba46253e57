package main

import (
	"github.com/vovakirdan/poopy-snake/internal/config"
	"github.com/vovakirdan/poopy-snake/internal/core"
	"github.com/vovakirdan/poopy-snake/internal/platform/tui"
	"github.com/vovakirdan/poopy-snake/internal/storage"
)

// menuLoop shows the variant picker until the player quits.
func menuLoop(preset config.DifficultyPreset, store *storage.Store, cfg core.RuntimeConfig) error {
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		switch {
		case menuResult.Quit:
			return nil

		case menuResult.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, "", cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			again, err := playOne(menuResult.GameID, preset, store, cfg, true)
			if err != nil {
				return err
			}
			if !again {
				return nil
			}
		}
	}
}
