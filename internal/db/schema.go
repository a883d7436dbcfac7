package db

const schema = `
-- Channels table
CREATE TABLE IF NOT EXISTS channels (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT DEFAULT '',
    position INTEGER NOT NULL DEFAULT 0
);

-- Videos table
CREATE TABLE IF NOT EXISTS videos (
    id TEXT PRIMARY KEY,
    channel_id TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT DEFAULT '',
    category TEXT NOT NULL DEFAULT 'featured',
    access TEXT NOT NULL DEFAULT 'free',
    duration_sec INTEGER NOT NULL DEFAULT 0,
    views INTEGER NOT NULL DEFAULT 0,
    position INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (channel_id) REFERENCES channels(id)
);

-- Saved videos ("My List")
CREATE TABLE IF NOT EXISTS my_list (
    video_id TEXT PRIMARY KEY,
    position INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (video_id) REFERENCES videos(id)
);

-- Hero slider
CREATE TABLE IF NOT EXISTS hero_slides (
    id TEXT PRIMARY KEY,
    video_id TEXT NOT NULL,
    headline TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (video_id) REFERENCES videos(id)
);

CREATE INDEX IF NOT EXISTS idx_videos_channel ON videos(channel_id, position);
CREATE INDEX IF NOT EXISTS idx_videos_category ON videos(category, position);
CREATE INDEX IF NOT EXISTS idx_videos_views ON videos(views DESC);
`
